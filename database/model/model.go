// Package model defines the persisted records of the portfolio app.
package model

import "time"

// AdminUserId is the reserved id of the administrator account, created on
// first boot when the users table is empty.
const AdminUserId = 1

type User struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email" form:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" form:"name" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-"` // bcrypt hash, never the plaintext
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u.Id == AdminUserId
}

type Project struct {
	Id        int       `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" form:"title" gorm:"uniqueIndex;not null"`
	Body      string    `json:"body" form:"body" gorm:"not null"`
	Image     string    `json:"image"` // stored name under the upload folder, may be empty
	CreatedAt time.Time `json:"createdAt"`
	UserId    int       `json:"-" gorm:"index;not null"`
}
