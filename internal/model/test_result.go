package model

import (
	"time"

	"gorm.io/gorm"
)

type TestResult struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	TestID      uint           `json:"test_id" gorm:"not null;index"`
	Test        Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	ResultLabel string         `json:"result" gorm:"not null"` // "INTJ", "Investigative"
	Description string         `json:"description" gorm:"type:text"`
	Scores      []ResultScore  `json:"scores,omitempty" gorm:"foreignKey:TestResultID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Majors      []Major        `json:"majors,omitempty" gorm:"many2many:result_majors;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// ResultScore is one category tally of a completed test. OrderIndex keeps the
// display order the scorer produced; the value is opaque to everything but
// the presentation layer.
type ResultScore struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	TestResultID uint   `json:"test_result_id" gorm:"not null;index"`
	Trait        string `json:"trait" gorm:"not null"`
	Value        int    `json:"value" gorm:"not null"`
	OrderIndex   int    `json:"order_index" gorm:"not null"`
}
