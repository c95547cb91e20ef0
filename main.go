package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jokafor/portfolio/config"
	"github.com/jokafor/portfolio/database"
	"github.com/jokafor/portfolio/logger"
	"github.com/jokafor/portfolio/web"
	"github.com/jokafor/portfolio/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	// Sessions are unusable without a signing secret, so refuse to start.
	if config.GetSecret() == "" {
		log.Fatal("PORTFOLIO_SECRET is not set")
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			logger.CloseLogger()
			return
		}
	}
}

func showSetting(show bool) {
	if !show {
		return
	}
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println(err)
		return
	}
	userService := service.UserService{}
	user, err := userService.GetFirstUser()
	if err != nil {
		fmt.Println("get admin user failed:", err)
		return
	}
	fmt.Println("admin email:", user.Email)
	fmt.Println("admin name:", user.Name)
}

func updateSetting(email string, password string) {
	if email == "" && password == "" {
		return
	}
	if email == "" || password == "" {
		fmt.Println("both email and password are required to update the admin account")
		return
	}
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println(err)
		return
	}
	userService := service.UserService{}
	if err := userService.UpdateFirstUser(email, password); err != nil {
		fmt.Println("set email and password failed:", err)
	} else {
		fmt.Println("set email and password success")
	}
}

func main() {
	_ = godotenv.Load()

	var showFlag bool
	var emailFlag string
	var passwordFlag string

	rootCmd := &cobra.Command{
		Use: config.GetName(),
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	settingCmd := &cobra.Command{
		Use:   "setting",
		Short: "Show or update the admin account",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting(showFlag)
			updateSetting(emailFlag, passwordFlag)
		},
	}
	settingCmd.Flags().BoolVarP(&showFlag, "show", "s", false, "show the admin account")
	settingCmd.Flags().StringVarP(&emailFlag, "email", "e", "", "set the admin email")
	settingCmd.Flags().StringVarP(&passwordFlag, "password", "p", "", "set the admin password")

	rootCmd.AddCommand(runCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
