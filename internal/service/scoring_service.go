package service

import (
	"fmt"
	"strings"

	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/model"
)

// mbtiAxes lists the four MBTI axes in display order. Ties go to the first
// letter of an axis.
var mbtiAxes = [4][2]string{
	{"E", "I"},
	{"S", "N"},
	{"T", "F"},
	{"J", "P"},
}

var mbtiAxisNames = map[string]string{
	"E": "Extraversion", "I": "Introversion",
	"S": "Sensing", "N": "Intuition",
	"T": "Thinking", "F": "Feeling",
	"J": "Judging", "P": "Perceiving",
}

// riasecTraits lists the six Holland codes in display order.
var riasecTraits = [6]string{
	"Realistic", "Investigative", "Artistic", "Social", "Enterprising", "Conventional",
}

var riasecDescriptions = map[string]string{
	"Realistic":     "You enjoy practical, hands-on work with tools, machines and the outdoors.",
	"Investigative": "You enjoy analysing problems, research and working with ideas and data.",
	"Artistic":      "You enjoy creative expression, design and unstructured environments.",
	"Social":        "You enjoy helping, teaching and working closely with people.",
	"Enterprising":  "You enjoy leading, persuading and taking on business challenges.",
	"Conventional":  "You enjoy organised, detail-oriented work with clear procedures.",
}

// ScoredOutcome is the scorer's verdict for a completed submission. Scores
// keep their display order; TopTraits drives major recommendations for
// career tests and is empty for personality tests.
type ScoredOutcome struct {
	Label       string
	Description string
	Scores      []model.ResultScore
	TopTraits   []string
}

// InvalidSubmissionError reports a submission that violates the positional
// answer contract: unknown question, out-of-range option index, or a
// question left unanswered.
type InvalidSubmissionError struct {
	Reason string
}

func (e *InvalidSubmissionError) Error() string {
	return "invalid submission: " + e.Reason
}

type ScoringService interface {
	Score(test *model.Test, answers []dto.AnswerDTO) (*ScoredOutcome, error)
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

func (s *scoringService) Score(test *model.Test, answers []dto.AnswerDTO) (*ScoredOutcome, error) {
	tallies, err := tallyTraits(test, answers)
	if err != nil {
		return nil, err
	}

	switch test.Type {
	case model.TestTypePersonality:
		return scorePersonality(tallies), nil
	case model.TestTypeCareer:
		return scoreCareer(tallies), nil
	default:
		return nil, fmt.Errorf("test %d has unknown type %q", test.ID, test.Type)
	}
}

// tallyTraits validates every answer against the test definition and counts
// selected options per trait key.
func tallyTraits(test *model.Test, answers []dto.AnswerDTO) (map[string]int, error) {
	questionMap := make(map[uint]*model.Question, len(test.Questions))
	for i := range test.Questions {
		questionMap[test.Questions[i].ID] = &test.Questions[i]
	}

	answered := make(map[uint]bool, len(answers))
	tallies := make(map[string]int)

	for _, a := range answers {
		question, exists := questionMap[a.QuestionID]
		if !exists {
			return nil, &InvalidSubmissionError{Reason: fmt.Sprintf("question %d is not part of test %d", a.QuestionID, test.ID)}
		}
		if answered[a.QuestionID] {
			return nil, &InvalidSubmissionError{Reason: fmt.Sprintf("question %d answered more than once", a.QuestionID)}
		}
		if a.Answer == nil || *a.Answer < 0 || *a.Answer >= len(question.Options) {
			return nil, &InvalidSubmissionError{Reason: fmt.Sprintf("answer for question %d is out of range", a.QuestionID)}
		}
		answered[a.QuestionID] = true
		tallies[question.Options[*a.Answer].Trait]++
	}

	if len(answered) != len(test.Questions) {
		return nil, &InvalidSubmissionError{
			Reason: fmt.Sprintf("expected %d answers, got %d", len(test.Questions), len(answered)),
		}
	}
	return tallies, nil
}

func scorePersonality(tallies map[string]int) *ScoredOutcome {
	var code strings.Builder
	var leanings []string
	for _, axis := range mbtiAxes {
		winner := axis[0]
		if tallies[axis[1]] > tallies[axis[0]] {
			winner = axis[1]
		}
		code.WriteString(winner)
		leanings = append(leanings, mbtiAxisNames[winner])
	}

	scores := make([]model.ResultScore, 0, 8)
	for _, axis := range mbtiAxes {
		for _, letter := range axis {
			scores = append(scores, model.ResultScore{
				Trait:      strings.ToLower(letter),
				Value:      tallies[letter],
				OrderIndex: len(scores),
			})
		}
	}

	return &ScoredOutcome{
		Label:       code.String(),
		Description: fmt.Sprintf("Your personality type is %s: you lean toward %s.", code.String(), strings.Join(leanings, ", ")),
		Scores:      scores,
	}
}

func scoreCareer(tallies map[string]int) *ScoredOutcome {
	scores := make([]model.ResultScore, 0, len(riasecTraits))
	top := riasecTraits[0]
	second := ""
	for i, trait := range riasecTraits {
		scores = append(scores, model.ResultScore{Trait: trait, Value: tallies[trait], OrderIndex: i})
		if tallies[trait] > tallies[top] {
			second = top
			top = trait
		} else if trait != top && (second == "" || tallies[trait] > tallies[second]) {
			second = trait
		}
	}

	topTraits := []string{top}
	if second != "" && tallies[second] > 0 {
		topTraits = append(topTraits, second)
	}

	return &ScoredOutcome{
		Label:       top,
		Description: riasecDescriptions[top],
		Scores:      scores,
		TopTraits:   topTraits,
	}
}
