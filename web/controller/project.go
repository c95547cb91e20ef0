package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jokafor/portfolio/database"
	"github.com/jokafor/portfolio/database/model"
	"github.com/jokafor/portfolio/logger"
	"github.com/jokafor/portfolio/web/forms"
	"github.com/jokafor/portfolio/web/middleware"
	"github.com/jokafor/portfolio/web/service"
	"github.com/jokafor/portfolio/web/session"

	"github.com/gin-gonic/gin"
)

// ProjectController handles the public listing and the admin-only project
// management flow.
type ProjectController struct {
	projectService service.ProjectService
	uploadService  service.UploadService
}

func NewProjectController(g *gin.RouterGroup) *ProjectController {
	a := &ProjectController{}
	a.initRouter(g)
	return a
}

func (a *ProjectController) initRouter(g *gin.RouterGroup) {
	g.GET("/projects", a.projects)

	admin := g.Group("/")
	admin.Use(middleware.LoginRequired(), middleware.AdminRequired())

	admin.GET("/add_project", a.addProjectPage)
	admin.POST("/add_project", a.addProject)
	admin.GET("/edit_project/:id", a.editProjectPage)
	admin.POST("/edit_project/:id", a.editProject)
	admin.GET("/delete_project/:id", a.deleteProject)
	admin.POST("/delete_project/:id", a.deleteProject)
}

// projects is public; the session identity rendered by html() decides
// whether the templates show the admin controls.
func (a *ProjectController) projects(c *gin.Context) {
	projects, err := a.projectService.GetProjects()
	if err != nil {
		logger.Error("list projects err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	html(c, "projects.html", "Projects", gin.H{
		"projects": projects,
	})
}

func (a *ProjectController) addProjectPage(c *gin.Context) {
	html(c, "project_form.html", "Add Project", gin.H{
		"action": "/add_project",
		"form":   forms.ProjectForm{},
	})
}

func (a *ProjectController) addProject(c *gin.Context) {
	var form forms.ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		a.renderProjectForm(c, "Add Project", "/add_project", form, forms.FieldErrors(err))
		return
	}

	// No image is a defined state: the row is created with an empty
	// reference and the listing renders a placeholder.
	image, ok := a.storeImage(c, "Add Project", "/add_project", form)
	if !ok {
		return
	}

	userId, _ := session.GetLoginUserId(c)
	project := &model.Project{
		Title:  form.Title,
		Body:   form.Body,
		Image:  image,
		UserId: userId,
	}
	err := a.projectService.AddProject(project)
	if errors.Is(err, service.ErrTitleTaken) {
		a.renderProjectForm(c, "Add Project", "/add_project", form, map[string]string{"title": err.Error()})
		return
	} else if err != nil {
		logger.Error("add project err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.AddNotice(c, "Project created.")
	c.Redirect(http.StatusSeeOther, "/projects")
}

func (a *ProjectController) editProjectPage(c *gin.Context) {
	project, ok := a.loadProject(c)
	if !ok {
		return
	}
	html(c, "project_form.html", "Edit Project", gin.H{
		"action": "/edit_project/" + strconv.Itoa(project.Id),
		"form":   forms.ProjectForm{Title: project.Title, Body: project.Body},
		"image":  project.Image,
	})
}

func (a *ProjectController) editProject(c *gin.Context) {
	project, ok := a.loadProject(c)
	if !ok {
		return
	}
	action := "/edit_project/" + strconv.Itoa(project.Id)

	var form forms.ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		a.renderProjectForm(c, "Edit Project", action, form, forms.FieldErrors(err))
		return
	}

	// Same upload contract as create; without a new file the stored
	// reference is kept.
	image, ok := a.storeImage(c, "Edit Project", action, form)
	if !ok {
		return
	}
	if image != "" {
		project.Image = image
	}

	project.Title = form.Title
	project.Body = form.Body
	err := a.projectService.UpdateProject(project)
	if errors.Is(err, service.ErrTitleTaken) {
		a.renderProjectForm(c, "Edit Project", action, form, map[string]string{"title": err.Error()})
		return
	} else if err != nil {
		logger.Error("update project err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.AddNotice(c, "Project updated.")
	c.Redirect(http.StatusSeeOther, "/projects")
}

func (a *ProjectController) deleteProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	err = a.projectService.DelProject(id)
	if database.IsNotFound(err) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	} else if err != nil {
		logger.Error("delete project err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.AddNotice(c, "Project deleted.")
	c.Redirect(http.StatusSeeOther, "/projects")
}

// loadProject resolves the :id parameter, answering 404 when it does not
// name a stored project.
func (a *ProjectController) loadProject(c *gin.Context) (*model.Project, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return nil, false
	}
	project, err := a.projectService.GetProject(id)
	if database.IsNotFound(err) {
		c.AbortWithStatus(http.StatusNotFound)
		return nil, false
	} else if err != nil {
		logger.Error("get project err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return nil, false
	}
	return project, true
}

// storeImage saves the optional multipart image field. It returns the stored
// name ("" when the field is absent) and whether the request may proceed; a
// rejected file re-renders the form with a field error.
func (a *ProjectController) storeImage(c *gin.Context, title, action string, form forms.ProjectForm) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", true
	}
	stored, err := a.uploadService.SaveImage(file)
	if err != nil {
		a.renderProjectForm(c, title, action, form, map[string]string{"image": err.Error()})
		return "", false
	}
	return stored, true
}

func (a *ProjectController) renderProjectForm(c *gin.Context, title, action string, form forms.ProjectForm, fieldErrors map[string]string) {
	html(c, "project_form.html", title, gin.H{
		"action": action,
		"form":   form,
		"errors": fieldErrors,
	})
}
