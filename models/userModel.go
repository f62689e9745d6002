package models

import "gorm.io/gorm"

// Role ids are fixed and seeded at migration time.
const (
	RoleAdmin    uint = 1
	RoleSeller   uint = 2
	RoleCustomer uint = 3
)

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex" json:"name"`
}

type User struct {
	gorm.Model
	Fullname string `json:"fullname"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"-"`
	RoleID   uint   `json:"roleId"`
	Role     Role   `json:"role"`

	PasswordResetToken string `json:"-"`
}

type RegisterData struct {
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
