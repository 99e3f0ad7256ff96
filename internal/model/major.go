package model

import (
	"time"

	"gorm.io/gorm"
)

type Major struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Code        string         `json:"code" gorm:"not null;uniqueIndex"` // "7480201"
	Name        string         `json:"name" gorm:"not null"`
	Department  string         `json:"department"`
	Campus      string         `json:"campus,omitempty"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	Traits      string         `json:"traits,omitempty"` // comma-separated RIASEC keys, e.g. "Investigative,Realistic"
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
