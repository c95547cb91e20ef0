package forms

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func bindForm(t *testing.T, form any, values url.Values) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(values.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.ShouldBind(form)
}

func TestRegisterFormValid(t *testing.T) {
	var form RegisterForm
	err := bindForm(t, &form, url.Values{
		"email":            {"jeku@example.com"},
		"name":             {"jeku"},
		"password":         {"hunter2hunter2"},
		"confirm_password": {"hunter2hunter2"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "jeku", form.Name)
}

func TestRegisterFormFieldErrors(t *testing.T) {
	var form RegisterForm
	err := bindForm(t, &form, url.Values{
		"email":            {"not-an-email"},
		"name":             {"j"},
		"password":         {"hunter2hunter2"},
		"confirm_password": {"different-password"},
	})
	assert.Error(t, err)

	errs := FieldErrors(err)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "confirm_password")
	assert.NotContains(t, errs, "password")
	assert.Equal(t, "Passwords do not match.", errs["confirm_password"])
	assert.Equal(t, "Must be at least 2 characters long.", errs["name"])
}

func TestRegisterFormRequired(t *testing.T) {
	var form RegisterForm
	err := bindForm(t, &form, url.Values{})
	assert.Error(t, err)

	errs := FieldErrors(err)
	for _, field := range []string{"email", "name", "password", "confirm_password"} {
		assert.Equal(t, "This field is required.", errs[field])
	}
}

func TestLoginFormRequired(t *testing.T) {
	var form LoginForm
	err := bindForm(t, &form, url.Values{"name": {"jeku"}})
	assert.Error(t, err)

	errs := FieldErrors(err)
	assert.NotContains(t, errs, "name")
	assert.Contains(t, errs, "password")
}

func TestProjectFormRequired(t *testing.T) {
	var form ProjectForm
	err := bindForm(t, &form, url.Values{"title": {"Alpha"}})
	assert.Error(t, err)

	errs := FieldErrors(err)
	assert.Contains(t, errs, "body")
}

func TestFieldErrorsNonValidator(t *testing.T) {
	errs := FieldErrors(assertableError{})
	assert.Contains(t, errs, "")
}

type assertableError struct{}

func (assertableError) Error() string { return "boom" }
