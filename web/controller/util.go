package controller

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jokafor/portfolio/config"
	"github.com/jokafor/portfolio/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// html renders a template with the provided data plus the ambient page
// context: title, session identity, flash messages, year and version.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	// Templates dereference .errors.<field>; keep the map present.
	if _, ok := data["errors"]; !ok {
		data["errors"] = map[string]string{}
	}
	data["isLogin"] = session.IsLogin(c)
	data["isAdmin"] = session.IsAdmin(c)
	notices, errs := session.PopNotices(c)
	data["notices"] = notices
	data["flashErrors"] = errs
	c.HTML(http.StatusOK, name, getContext(data))
}

// getContext adds version and current year to the provided gin.H.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver": config.GetVersion(),
		"year":    time.Now().Year(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}
