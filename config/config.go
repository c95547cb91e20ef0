// Package config exposes the process configuration, read from environment
// variables with documented defaults. The binary name and version are
// embedded at build time.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("PORTFOLIO_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("PORTFOLIO_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("PORTFOLIO_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("PORTFOLIO_PORT"))
	if err != nil || port <= 0 {
		return 8080
	}
	return port
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("PORTFOLIO_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "db"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return filepath.Join(GetDBFolderPath(), GetName()+".db")
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("PORTFOLIO_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

// GetSecret returns the cookie-signing secret. There is deliberately no
// default: sessions signed with a guessable key are worse than no server.
func GetSecret() string {
	return os.Getenv("PORTFOLIO_SECRET")
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	maxAge, err := strconv.Atoi(os.Getenv("PORTFOLIO_SESSION_MAX_AGE"))
	if err != nil || maxAge <= 0 {
		return 60
	}
	return maxAge
}

// GetAdminEmail and GetAdminPassword source the first-boot administrator
// account. They are only consulted while the users table is empty.
func GetAdminEmail() string {
	email := os.Getenv("PORTFOLIO_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	return email
}

func GetAdminName() string {
	name := os.Getenv("PORTFOLIO_ADMIN_NAME")
	if name == "" {
		name = "admin"
	}
	return name
}

func GetAdminPassword() string {
	password := os.Getenv("PORTFOLIO_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}
	return password
}

func GetUploadFolder() string {
	uploadFolderPath := os.Getenv("PORTFOLIO_UPLOAD_FOLDER")
	if uploadFolderPath == "" {
		uploadFolderPath = "uploads"
	}
	return uploadFolderPath
}

// GetResumeFile returns the path of the file streamed by the download page.
func GetResumeFile() string {
	resumeFile := os.Getenv("PORTFOLIO_RESUME_FILE")
	if resumeFile == "" {
		resumeFile = filepath.Join("web", "assets", "files", "resume.pdf")
	}
	return resumeFile
}
