package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jokafor/portfolio/config"
	"github.com/jokafor/portfolio/database"
	"github.com/jokafor/portfolio/logger"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	t.Setenv("PORTFOLIO_SECRET", "test-secret")
	t.Setenv("PORTFOLIO_DB_FOLDER", t.TempDir())
	t.Setenv("PORTFOLIO_UPLOAD_FOLDER", t.TempDir())
	t.Setenv("PORTFOLIO_LOG_FOLDER", t.TempDir())

	resume := filepath.Join(t.TempDir(), "resume.pdf")
	assert.NoError(t, os.WriteFile(resume, []byte("%PDF-1.4 test"), 0o644))
	t.Setenv("PORTFOLIO_RESUME_FILE", resume)

	logger.InitLogger(logging.DEBUG)

	assert.NoError(t, database.InitDB(config.GetDBPath()))
	t.Cleanup(func() { database.CloseDB() })

	s := NewServer()
	engine, err := s.initRouter()
	assert.NoError(t, err)
	return engine
}

func doRequest(engine *gin.Engine, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// loginAsAdmin authenticates with the seeded default credentials and returns
// the session cookies.
func loginAsAdmin(t *testing.T, engine *gin.Engine) []*http.Cookie {
	t.Helper()
	w := doRequest(engine, "POST", "/login", url.Values{
		"name":     {"admin"},
		"password": {"changeme"},
	}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/add_project", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	assert.NotEmpty(t, cookies)
	return cookies
}

func TestPublicPages(t *testing.T) {
	engine := newTestEngine(t)

	for _, path := range []string{"/", "/contact", "/resume", "/projects", "/login", "/register"} {
		w := doRequest(engine, "GET", path, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}

	w := doRequest(engine, "GET", "/download", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "resume.pdf")

	w = doRequest(engine, "GET", "/no-such-page", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginFailures(t *testing.T) {
	engine := newTestEngine(t)

	// Unknown name and wrong password produce the same page and message.
	unknown := doRequest(engine, "POST", "/login", url.Values{
		"name":     {"nobody"},
		"password": {"changeme"},
	}, nil)
	wrong := doRequest(engine, "POST", "/login", url.Values{
		"name":     {"admin"},
		"password": {"not-the-password"},
	}, nil)
	for _, w := range []*httptest.ResponseRecorder{unknown, wrong} {
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Wrong name or password.")
	}

	// No session was established either way.
	w := doRequest(engine, "GET", "/add_project", nil, unknown.Result().Cookies())
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestAdminGate(t *testing.T) {
	engine := newTestEngine(t)

	// Anonymous: redirected to login by the first guard.
	w := doRequest(engine, "POST", "/add_project", url.Values{"title": {"T"}, "body": {"B"}}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// A registered non-admin user is forbidden.
	w = doRequest(engine, "POST", "/register", url.Values{
		"email":            {"visitor@example.com"},
		"name":             {"visitor"},
		"password":         {"hunter2hunter2"},
		"confirm_password": {"hunter2hunter2"},
	}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = doRequest(engine, "POST", "/login", url.Values{
		"name":     {"visitor"},
		"password": {"hunter2hunter2"},
	}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/projects", w.Header().Get("Location"))
	visitorCookies := w.Result().Cookies()

	for _, path := range []string{"/add_project", "/edit_project/1", "/delete_project/1"} {
		w = doRequest(engine, "GET", path, nil, visitorCookies)
		assert.Equal(t, http.StatusForbidden, w.Code, "GET %s", path)
	}
}

func TestProjectLifecycle(t *testing.T) {
	engine := newTestEngine(t)
	cookies := loginAsAdmin(t, engine)

	// Create without an image: defined behavior, row with empty reference.
	w := doRequest(engine, "POST", "/add_project", url.Values{
		"title": {"Alpha"},
		"body":  {"<p>Body</p>"},
	}, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/projects", w.Header().Get("Location"))

	w = doRequest(engine, "GET", "/projects", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, strings.Count(w.Body.String(), "<h5 class=\"card-title\">Alpha</h5>"))
	assert.Contains(t, w.Body.String(), "/edit_project/")

	// Duplicate title is rejected with a form error, not a second row.
	w = doRequest(engine, "POST", "/add_project", url.Values{
		"title": {"Alpha"},
		"body":  {"<p>Other</p>"},
	}, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")

	w = doRequest(engine, "GET", "/projects", nil, nil)
	assert.Equal(t, 1, strings.Count(w.Body.String(), "<h5 class=\"card-title\">Alpha</h5>"))
	// Anonymous visitors see no admin controls.
	assert.NotContains(t, w.Body.String(), "/edit_project/")

	// Edit mutates only the submitted fields.
	w = doRequest(engine, "POST", "/edit_project/1", url.Values{
		"title": {"Alpha v2"},
		"body":  {"<p>Updated</p>"},
	}, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = doRequest(engine, "GET", "/projects", nil, nil)
	assert.Contains(t, w.Body.String(), "Alpha v2")
	assert.Contains(t, w.Body.String(), "<p>Updated</p>")

	// Missing ids are 404s for both edit and delete.
	w = doRequest(engine, "GET", "/edit_project/999", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doRequest(engine, "POST", "/delete_project/999", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Delete removes the row from subsequent listings.
	w = doRequest(engine, "GET", "/delete_project/1", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	w = doRequest(engine, "GET", "/projects", nil, nil)
	assert.NotContains(t, w.Body.String(), "Alpha v2")
}

func TestLogout(t *testing.T) {
	engine := newTestEngine(t)
	cookies := loginAsAdmin(t, engine)

	w := doRequest(engine, "GET", "/logout", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// The cleared cookie no longer opens the admin routes.
	w = doRequest(engine, "GET", "/add_project", nil, w.Result().Cookies())
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
