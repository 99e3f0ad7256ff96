package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	FullName  string         `json:"full_name" gorm:"not null"`
	Email     string         `json:"email" gorm:"not null;uniqueIndex"`
	Phone     string         `json:"phone"`
	Password  string         `json:"-" gorm:"not null"`
	Address   string         `json:"address,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Role      string         `json:"role" gorm:"default:'user'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
