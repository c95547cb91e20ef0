package service

import (
	"os"
	"testing"

	"github.com/jokafor/portfolio/database"
	"github.com/jokafor/portfolio/database/model"
	"github.com/jokafor/portfolio/util/crypto"

	"github.com/stretchr/testify/assert"
)

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func TestAdminSeeding(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}

	admin, err := userService.GetFirstUser()
	assert.NoError(t, err)
	assert.Equal(t, model.AdminUserId, admin.Id)
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, "admin@example.com", admin.Email)

	// The stored value is a hash of the default password, not the password.
	assert.NotEqual(t, "changeme", admin.Password)
	assert.True(t, crypto.CheckPasswordHash(admin.Password, "changeme"))
}

func TestRegisterAndCheckUser(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}

	user, err := userService.Register("jeku@example.com", "jeku", "hunter2hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, model.AdminUserId, user.Id)
	assert.NotEqual(t, "hunter2hunter2", user.Password)

	// Correct credentials establish identity.
	checked := userService.CheckUser("jeku", "hunter2hunter2")
	assert.NotNil(t, checked)
	assert.Equal(t, user.Id, checked.Id)

	// Wrong password and unknown name both yield nil.
	assert.Nil(t, userService.CheckUser("jeku", "wrong-password"))
	assert.Nil(t, userService.CheckUser("nobody", "hunter2hunter2"))
}

func TestRegisterDuplicates(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}

	_, err := userService.Register("jeku@example.com", "jeku", "hunter2hunter2")
	assert.NoError(t, err)

	_, err = userService.Register("jeku@example.com", "other", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = userService.Register("other@example.com", "jeku", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestUpdateFirstUser(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}

	err := userService.UpdateFirstUser("new@example.com", "anotherpassword")
	assert.NoError(t, err)

	admin, err := userService.GetFirstUser()
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", admin.Email)
	assert.True(t, crypto.CheckPasswordHash(admin.Password, "anotherpassword"))

	err = userService.UpdateFirstUser("", "anotherpassword")
	assert.Error(t, err)
}
