// Package service implements the persistence-facing operations of the
// portfolio app. Services are plain structs working against the shared
// database handle.
package service

import (
	"errors"

	"github.com/jokafor/portfolio/database"
	"github.com/jokafor/portfolio/database/model"
	"github.com/jokafor/portfolio/logger"
	"github.com/jokafor/portfolio/util/crypto"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	ErrNameTaken  = errors.New("name already in use")
)

type UserService struct{}

func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetFirstUser() (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies the credentials and returns the matching user, or nil.
// Unknown name and wrong password are indistinguishable to the caller.
func (s *UserService) CheckUser(name string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("name = ?", name).
		First(user).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}

// Register creates a user with a hashed password. Duplicate email or name
// is reported as ErrEmailTaken / ErrNameTaken before any insert; the unique
// indexes remain as a backstop against concurrent registration.
func (s *UserService) Register(email string, name string, password string) (*model.User, error) {
	db := database.GetDB()

	var count int64
	if err := db.Model(model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	if err := db.Model(model.User{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrNameTaken
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:    email,
		Name:     name,
		Password: hash,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateFirstUser resets the administrator's email and password from the
// command line.
func (s *UserService) UpdateFirstUser(email string, password string) error {
	if email == "" {
		return errors.New("email can not be empty")
	} else if password == "" {
		return errors.New("password can not be empty")
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	user := &model.User{}
	err = db.Model(model.User{}).First(user).Error
	if database.IsNotFound(err) {
		user.Id = model.AdminUserId
		user.Email = email
		user.Name = "admin"
		user.Password = hash
		return db.Create(user).Error
	} else if err != nil {
		return err
	}

	return db.Model(model.User{}).
		Where("id = ?", user.Id).
		Updates(map[string]any{"email": email, "password": hash}).
		Error
}
