package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ndthang/edubot/internal/model"
)

type testWithCount = struct {
	model.Test
	QuestionCount int
}

type fakeTestRepo struct {
	tests map[uint]*model.Test
}

func (f *fakeTestRepo) Create(test *model.Test) error { return nil }

func (f *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	return f.FindByIDWithQuestions(id)
}

func (f *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	test, ok := f.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return test, nil
}

func (f *fakeTestRepo) FindAllWithQuestionCount() ([]testWithCount, error) {
	var out []testWithCount
	for _, test := range f.tests {
		out = append(out, testWithCount{Test: *test, QuestionCount: len(test.Questions)})
	}
	return out, nil
}

func personalityTestFixture() *model.Test {
	test := buildTest(model.TestTypePersonality, [][]string{
		{"E", "I"}, {"S", "N"}, {"T", "F"}, {"J", "P"},
	})
	test.Name = "MBTI Personality Test"
	for i := range test.Questions {
		test.Questions[i].Prompt = "prompt"
		for j := range test.Questions[i].Options {
			test.Questions[i].Options[j].Text = "option"
		}
	}
	return test
}

func TestGetTestDetailsFlattensOptions(t *testing.T) {
	repo := &fakeTestRepo{tests: map[uint]*model.Test{1: personalityTestFixture()}}
	svc := NewTestService(repo)

	resp, err := svc.GetTestDetails(1)
	require.NoError(t, err)

	assert.Equal(t, "MBTI Personality Test", resp.Name)
	require.Len(t, resp.Questions, 4)
	assert.Equal(t, []string{"option", "option"}, resp.Questions[0].Options)
}

func TestGetTestDetailsNotFound(t *testing.T) {
	svc := NewTestService(&fakeTestRepo{tests: map[uint]*model.Test{}})

	_, err := svc.GetTestDetails(99)
	assert.ErrorIs(t, err, ErrTestNotFound)
}

func TestGetAllTestsIncludesQuestionCount(t *testing.T) {
	repo := &fakeTestRepo{tests: map[uint]*model.Test{1: personalityTestFixture()}}
	svc := NewTestService(repo)

	tests, err := svc.GetAllTests()
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, 4, tests[0].QuestionCount)
}
