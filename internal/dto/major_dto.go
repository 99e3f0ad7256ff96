package dto

// MajorQueryDTO carries list filters; all are optional.
type MajorQueryDTO struct {
	Search     string `form:"search"`
	Department string `form:"department"`
	Campus     string `form:"campus"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
}

type MajorDTO struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Department  string `json:"department,omitempty"`
	Campus      string `json:"campus,omitempty"`
	Description string `json:"description,omitempty"`
}

type MajorListDTO struct {
	Majors []MajorDTO `json:"majors"`
	Total  int64      `json:"total"`
	Page   int        `json:"page"`
	Limit  int        `json:"limit"`
}
