package dto

import "time"

// TestSummaryDTO is used for listing tests available to users.
type TestSummaryDTO struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Description   string `json:"description,omitempty"`
	QuestionCount int    `json:"question_count"`
}

// QuestionDTO carries one question with its options in presentation order.
// The zero-based position of an option is the value submitted for it.
type QuestionDTO struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// TestResponseDTO is the full test definition a client runs a session from.
type TestResponseDTO struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	Description string        `json:"description,omitempty"`
	Questions   []QuestionDTO `json:"questions"`
}

// AnswerDTO pairs a question with the index of the option the user picked.
type AnswerDTO struct {
	QuestionID uint `json:"questionId" binding:"required"`
	Answer     *int `json:"answer" binding:"required"`
}

type SubmitTestDTO struct {
	Answers []AnswerDTO `json:"answers" binding:"required,min=1,dive"`
}

// ScoreEntryDTO is one category tally. Entries are serialized as an ordered
// list so clients can render them in the order the scorer produced.
type ScoreEntryDTO struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

type MajorBriefDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// TestResultDTO is a scored, persisted result.
type TestResultDTO struct {
	ID                uint            `json:"id"`
	TestID            uint            `json:"test_id"`
	TestName          string          `json:"testName,omitempty"`
	TestType          string          `json:"testType,omitempty"`
	Result            string          `json:"result"`
	Description       string          `json:"description"`
	Score             []ScoreEntryDTO `json:"score,omitempty"`
	RecommendedMajors []MajorBriefDTO `json:"recommendedMajors,omitempty"`
	Date              time.Time       `json:"date"`
}

// TestResultSummaryDTO is one row of a user's result history.
type TestResultSummaryDTO struct {
	ID       uint      `json:"id"`
	TestID   uint      `json:"test_id"`
	TestName string    `json:"testName"`
	TestType string    `json:"testType"`
	Result   string    `json:"result"`
	Date     time.Time `json:"date"`
}
