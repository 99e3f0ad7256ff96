package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/model"
)

func intPtr(v int) *int { return &v }

// buildTest assembles an in-memory test where question i offers the traits
// in traitPairs[i] as its options, in order.
func buildTest(testType string, traitPairs [][]string) *model.Test {
	test := &model.Test{ID: 1, Name: "t", Type: testType}
	for i, traits := range traitPairs {
		q := model.Question{ID: uint(10 + i), TestID: 1, OrderInTest: i}
		for j, trait := range traits {
			q.Options = append(q.Options, model.Option{Trait: trait, OrderInQuestion: j})
		}
		test.Questions = append(test.Questions, q)
	}
	return test
}

func answersFor(test *model.Test, picks []int) []dto.AnswerDTO {
	answers := make([]dto.AnswerDTO, len(picks))
	for i, p := range picks {
		answers[i] = dto.AnswerDTO{QuestionID: test.Questions[i].ID, Answer: intPtr(p)}
	}
	return answers
}

func TestScorePersonalityBuildsTypeCode(t *testing.T) {
	test := buildTest(model.TestTypePersonality, [][]string{
		{"E", "I"}, {"E", "I"},
		{"S", "N"}, {"S", "N"},
		{"T", "F"}, {"T", "F"},
		{"J", "P"}, {"J", "P"},
	})
	outcome, err := NewScoringService().Score(test, answersFor(test, []int{1, 1, 1, 0, 1, 1, 1, 0}))
	require.NoError(t, err)

	// S/N and J/P tie 1-1; ties go to the first letter of the axis.
	assert.Equal(t, "ISFJ", outcome.Label)
	assert.Empty(t, outcome.TopTraits)

	require.Len(t, outcome.Scores, 8)
	assert.Equal(t, "e", outcome.Scores[0].Trait)
	assert.Equal(t, 0, outcome.Scores[0].Value)
	assert.Equal(t, "i", outcome.Scores[1].Trait)
	assert.Equal(t, 2, outcome.Scores[1].Value)
	for i, score := range outcome.Scores {
		assert.Equal(t, i, score.OrderIndex)
	}
}

func TestScoreCareerPicksTopTraits(t *testing.T) {
	test := buildTest(model.TestTypeCareer, [][]string{
		{"Realistic", "Artistic", "Social"},
		{"Realistic", "Artistic", "Social"},
		{"Realistic", "Artistic", "Social"},
		{"Investigative", "Enterprising", "Conventional"},
	})
	outcome, err := NewScoringService().Score(test, answersFor(test, []int{1, 1, 2, 0}))
	require.NoError(t, err)

	assert.Equal(t, "Artistic", outcome.Label)
	assert.NotEmpty(t, outcome.Description)
	require.Len(t, outcome.Scores, 6)
	assert.Equal(t, "Realistic", outcome.Scores[0].Trait)
	assert.Equal(t, 2, outcome.Scores[2].Value)

	require.NotEmpty(t, outcome.TopTraits)
	assert.Equal(t, "Artistic", outcome.TopTraits[0])
}

func TestScoreRejectsUnknownQuestion(t *testing.T) {
	test := buildTest(model.TestTypePersonality, [][]string{{"E", "I"}})
	answers := []dto.AnswerDTO{{QuestionID: 999, Answer: intPtr(0)}}

	_, err := NewScoringService().Score(test, answers)
	var subErr *InvalidSubmissionError
	require.ErrorAs(t, err, &subErr)
}

func TestScoreRejectsDuplicateAnswer(t *testing.T) {
	test := buildTest(model.TestTypePersonality, [][]string{{"E", "I"}, {"S", "N"}})
	answers := []dto.AnswerDTO{
		{QuestionID: test.Questions[0].ID, Answer: intPtr(0)},
		{QuestionID: test.Questions[0].ID, Answer: intPtr(1)},
	}

	_, err := NewScoringService().Score(test, answers)
	var subErr *InvalidSubmissionError
	require.ErrorAs(t, err, &subErr)
}

func TestScoreRejectsOutOfRangeAnswer(t *testing.T) {
	test := buildTest(model.TestTypePersonality, [][]string{{"E", "I"}})

	for _, answer := range []*int{nil, intPtr(-1), intPtr(2)} {
		_, err := NewScoringService().Score(test, []dto.AnswerDTO{{QuestionID: test.Questions[0].ID, Answer: answer}})
		var subErr *InvalidSubmissionError
		require.ErrorAs(t, err, &subErr)
	}
}

func TestScoreRejectsIncompleteSubmission(t *testing.T) {
	test := buildTest(model.TestTypePersonality, [][]string{{"E", "I"}, {"S", "N"}})
	answers := []dto.AnswerDTO{{QuestionID: test.Questions[0].ID, Answer: intPtr(0)}}

	_, err := NewScoringService().Score(test, answers)
	var subErr *InvalidSubmissionError
	require.ErrorAs(t, err, &subErr)
}
