// Package session wraps the cookie session with typed helpers. Only the
// authenticated user's id is stored; the user row itself stays in the store.
package session

import (
	"github.com/jokafor/portfolio/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUserId = "LOGIN_USER_ID"
	flashNotice = "notice"
	flashError  = "error"
)

// SetLoginUser binds the session to the user's id for maxAge seconds. One
// save, so exactly one Set-Cookie leaves with the response.
func SetLoginUser(c *gin.Context, user *model.User, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	s.Set(loginUserId, user.Id)
	return s.Save()
}

// GetLoginUserId returns the authenticated user's id, or false when the
// session carries no login.
func GetLoginUserId(c *gin.Context) (int, bool) {
	s := sessions.Default(c)
	if obj := s.Get(loginUserId); obj != nil {
		if id, ok := obj.(int); ok {
			return id, true
		}
	}
	return 0, false
}

func IsLogin(c *gin.Context) bool {
	_, ok := GetLoginUserId(c)
	return ok
}

func IsAdmin(c *gin.Context) bool {
	id, ok := GetLoginUserId(c)
	return ok && id == model.AdminUserId
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}

// AddNotice queues a one-shot notice shown on the next rendered page.
func AddNotice(c *gin.Context, msg string) error {
	s := sessions.Default(c)
	s.AddFlash(msg, flashNotice)
	return s.Save()
}

// AddError queues a one-shot error message shown on the next rendered page.
func AddError(c *gin.Context, msg string) error {
	s := sessions.Default(c)
	s.AddFlash(msg, flashError)
	return s.Save()
}

// PopNotices drains and returns the queued notices and errors.
func PopNotices(c *gin.Context) (notices []string, errs []string) {
	s := sessions.Default(c)
	for _, f := range s.Flashes(flashNotice) {
		if msg, ok := f.(string); ok {
			notices = append(notices, msg)
		}
	}
	for _, f := range s.Flashes(flashError) {
		if msg, ok := f.(string); ok {
			errs = append(errs, msg)
		}
	}
	_ = s.Save()
	return notices, errs
}
