package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	TestTypePersonality = "PERSONALITY"
	TestTypeCareer      = "CAREER"
)

type Test struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `json:"name" gorm:"not null;uniqueIndex"` // "MBTI Personality Test"
	Type        string         `json:"type" gorm:"not null"`             // PERSONALITY, CAREER
	Description string         `json:"description,omitempty"`
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
