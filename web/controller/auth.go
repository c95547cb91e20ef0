package controller

import (
	"errors"
	"net/http"

	"github.com/jokafor/portfolio/config"
	"github.com/jokafor/portfolio/logger"
	"github.com/jokafor/portfolio/web/forms"
	"github.com/jokafor/portfolio/web/middleware"
	"github.com/jokafor/portfolio/web/service"
	"github.com/jokafor/portfolio/web/session"

	"github.com/gin-gonic/gin"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	userService service.UserService
}

func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.GET("/register", a.registerPage)
	g.POST("/register", a.register)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/logout", middleware.LoginRequired(), a.logout)
}

func (a *AuthController) registerPage(c *gin.Context) {
	html(c, "register.html", "Sign Up", gin.H{
		"form": forms.RegisterForm{},
	})
}

func (a *AuthController) register(c *gin.Context) {
	var form forms.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "register.html", "Sign Up", gin.H{
			"errors": forms.FieldErrors(err),
			"form":   form,
		})
		return
	}

	_, err := a.userService.Register(form.Email, form.Name, form.Password)
	if err != nil {
		fieldErrors := map[string]string{}
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			fieldErrors["email"] = "Email already registered."
		case errors.Is(err, service.ErrNameTaken):
			fieldErrors["name"] = "Username already in use."
		default:
			logger.Error("register err:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		html(c, "register.html", "Sign Up", gin.H{
			"errors": fieldErrors,
			"form":   form,
		})
		return
	}

	session.AddNotice(c, "Account created, you can log in now.")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (a *AuthController) loginPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusSeeOther, "/projects")
		return
	}
	html(c, "login.html", "Login", gin.H{
		"form": forms.LoginForm{},
	})
}

func (a *AuthController) login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "login.html", "Login", gin.H{
			"errors": forms.FieldErrors(err),
			"form":   form,
		})
		return
	}

	user := a.userService.CheckUser(form.Name, form.Password)
	if user == nil {
		// One message for both unknown name and wrong password.
		logger.Warningf("failed login for %q, IP: %s", form.Name, getRemoteIp(c))
		html(c, "login.html", "Login", gin.H{
			"loginError": "Wrong name or password.",
			"form":       form,
		})
		return
	}

	if err := session.SetLoginUser(c, user, config.GetSessionMaxAge()*60); err != nil {
		logger.Error("unable to save session:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	logger.Infof("%s logged in, IP: %s", user.Name, getRemoteIp(c))
	if user.IsAdmin() {
		c.Redirect(http.StatusSeeOther, "/add_project")
		return
	}
	c.Redirect(http.StatusSeeOther, "/projects")
}

func (a *AuthController) logout(c *gin.Context) {
	if id, ok := session.GetLoginUserId(c); ok {
		logger.Infof("user %d logged out", id)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}
