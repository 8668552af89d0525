package model

import "gorm.io/gorm"

const RoleAdmin = "admin"

type Admin struct {
	gorm.Model
	Name     string `json:"name"`
	Username string `json:"username" gorm:"size:100;uniqueIndex;not null"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"size:20;default:admin"`
}
