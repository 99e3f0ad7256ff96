package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	TestID      uint           `json:"test_id" gorm:"not null;index"`
	Prompt      string         `json:"prompt" gorm:"type:text;not null"`
	OrderInTest int            `json:"order_in_test" gorm:"not null"`
	Options     []Option       `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Option is one selectable answer for a question. Its position inside the
// question (OrderInQuestion, zero-based) is the value clients submit; Trait
// is the scoring key the option counts toward (an MBTI letter or a RIASEC
// category).
type Option struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	QuestionID      uint           `json:"question_id" gorm:"not null;index"`
	Text            string         `json:"text" gorm:"not null"`
	Trait           string         `json:"trait" gorm:"not null"`
	OrderInQuestion int            `json:"order_in_question" gorm:"not null"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
