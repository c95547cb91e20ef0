// Package middleware contains the request guards applied ahead of handler
// bodies. Guards are composed explicitly on the routes that need them and
// evaluated in registration order.
package middleware

import (
	"net/http"

	"github.com/jokafor/portfolio/web/session"

	"github.com/gin-gonic/gin"
)

// LoginRequired aborts requests that carry no authenticated session,
// sending browsers to the login page.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsLogin(c) {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired aborts requests whose session user is not the administrator.
// It assumes LoginRequired ran first but does not depend on it: an anonymous
// session fails the admin check as well.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsAdmin(c) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
