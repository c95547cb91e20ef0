// Package controller provides the HTTP handlers of the portfolio app:
// public pages, authentication and the admin project management flow.
package controller

import (
	"github.com/jokafor/portfolio/config"

	"github.com/gin-gonic/gin"
)

// IndexController handles the static public pages and the resume download.
type IndexController struct{}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/contact", a.contact)
	g.GET("/resume", a.resume)
	g.GET("/download", a.download)
}

func (a *IndexController) index(c *gin.Context) {
	html(c, "index.html", "Home", nil)
}

func (a *IndexController) contact(c *gin.Context) {
	html(c, "contact.html", "Contact", nil)
}

func (a *IndexController) resume(c *gin.Context) {
	html(c, "resume.html", "Resume", nil)
}

// download streams the resume file as an attachment.
func (a *IndexController) download(c *gin.Context) {
	c.FileAttachment(config.GetResumeFile(), "resume.pdf")
}
