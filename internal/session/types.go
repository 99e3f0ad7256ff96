package session

import "context"

// TestDefinition is the fixed set of questions for one assessment. Question
// order is significant: it is both the presentation order and the positional
// mapping used when answers are submitted.
type TestDefinition struct {
	ID          string
	Name        string
	Type        string // PERSONALITY, CAREER
	Description string
	Questions   []Question
}

// Question holds one prompt and its options. An option's zero-based position
// is its selectable value.
type Question struct {
	ID      string
	Prompt  string
	Options []string
}

// Answer pairs a question id with the index of the selected option.
type Answer struct {
	QuestionID string `json:"questionId"`
	Answer     int    `json:"answer"`
}

// CategoryScore is one entry of the optional score breakdown. A slice keeps
// the order the scoring service produced, which a map would lose.
type CategoryScore struct {
	Key   string
	Value string
}

// RecommendedItem is an opaque reference item (a major) attached to a result.
type RecommendedItem struct {
	Name string
	Code string
}

// TestResult is the scoring service's classification, echoed verbatim to the
// presentation layer. Label and Description are always present; the rest is
// optional.
type TestResult struct {
	Label          string
	Description    string
	TestType       string
	CategoryScores []CategoryScore
	Recommended    []RecommendedItem
}

// ResultSummary is one row of a user's result history.
type ResultSummary struct {
	ID       string
	TestName string
	TestType string
	Label    string
	Date     string
}

// State is the session lifecycle position.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoadFailed
	StateInProgress
	StateSubmitting
	StateCompleted
	StateSubmitFailed
)

var stateNames = map[State]string{
	StateIdle:         "idle",
	StateLoading:      "loading",
	StateLoadFailed:   "load_failed",
	StateInProgress:   "in_progress",
	StateSubmitting:   "submitting",
	StateCompleted:    "completed",
	StateSubmitFailed: "submit_failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Catalog serves test definitions.
type Catalog interface {
	FetchTestDefinition(ctx context.Context, testID string) (*TestDefinition, error)
}

// Scorer scores a completed answer set.
type Scorer interface {
	SubmitAnswers(ctx context.Context, testID string, answers []Answer) (*TestResult, error)
}

// History reads past completed results. The session controller never writes
// it; the detail-view flow consumes it.
type History interface {
	FetchResultHistory(ctx context.Context) ([]ResultSummary, error)
	FetchResultByID(ctx context.Context, resultID string) (*TestResult, error)
}
