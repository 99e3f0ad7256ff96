package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/model"
)

type fakeResultRepo struct {
	results map[uint]*model.TestResult
	nextID  uint
}

func (f *fakeResultRepo) Create(result *model.TestResult) error {
	f.nextID++
	result.ID = f.nextID
	if f.results == nil {
		f.results = map[uint]*model.TestResult{}
	}
	f.results[result.ID] = result
	return nil
}

func (f *fakeResultRepo) FindByIDWithDetails(id uint) (*model.TestResult, error) {
	result, ok := f.results[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return result, nil
}

func (f *fakeResultRepo) FindAllByUser(userID uint) ([]model.TestResult, error) {
	var out []model.TestResult
	for _, r := range f.results {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeMajorRepo struct {
	byTrait map[string][]model.Major
}

func (f *fakeMajorRepo) FindAll(q dto.MajorQueryDTO) ([]model.Major, int64, error) {
	return nil, 0, nil
}

func (f *fakeMajorRepo) FindByID(id uint) (*model.Major, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMajorRepo) FindByTrait(trait string) ([]model.Major, error) {
	return f.byTrait[trait], nil
}

func careerTestFixture() *model.Test {
	test := buildTest(model.TestTypeCareer, [][]string{
		{"Artistic", "Realistic"},
		{"Artistic", "Social"},
	})
	test.Name = "Career Orientation Test"
	return test
}

func newResultService(test *model.Test, majors map[string][]model.Major) (ResultService, *fakeResultRepo) {
	resultRepo := &fakeResultRepo{}
	svc := NewResultService(
		&fakeTestRepo{tests: map[uint]*model.Test{test.ID: test}},
		resultRepo,
		&fakeMajorRepo{byTrait: majors},
		NewScoringService(),
	)
	return svc, resultRepo
}

func TestSubmitTestPersistsScoredResult(t *testing.T) {
	test := careerTestFixture()
	majors := map[string][]model.Major{
		"Artistic": {{ID: 5, Code: "7210403", Name: "Graphic Design"}},
	}
	svc, resultRepo := newResultService(test, majors)

	req := dto.SubmitTestDTO{Answers: []dto.AnswerDTO{
		{QuestionID: test.Questions[0].ID, Answer: intPtr(0)},
		{QuestionID: test.Questions[1].ID, Answer: intPtr(0)},
	}}
	result, err := svc.SubmitTest(42, test.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "Artistic", result.Result)
	assert.Equal(t, "CAREER", result.TestType)
	require.Len(t, result.Score, 6)
	assert.Equal(t, "Realistic", result.Score[0].Key)
	require.Len(t, result.RecommendedMajors, 1)
	assert.Equal(t, "Graphic Design", result.RecommendedMajors[0].Name)

	saved, err := resultRepo.FindByIDWithDetails(result.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(42), saved.UserID)
	assert.Equal(t, "Artistic", saved.ResultLabel)
}

func TestSubmitTestUnknownTest(t *testing.T) {
	svc, _ := newResultService(careerTestFixture(), nil)

	_, err := svc.SubmitTest(42, 99, dto.SubmitTestDTO{Answers: []dto.AnswerDTO{{QuestionID: 1, Answer: intPtr(0)}}})
	assert.ErrorIs(t, err, ErrTestNotFound)
}

func TestSubmitTestInvalidAnswersRejected(t *testing.T) {
	test := careerTestFixture()
	svc, resultRepo := newResultService(test, nil)

	req := dto.SubmitTestDTO{Answers: []dto.AnswerDTO{
		{QuestionID: test.Questions[0].ID, Answer: intPtr(0)},
	}}
	_, err := svc.SubmitTest(42, test.ID, req)

	var subErr *InvalidSubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Empty(t, resultRepo.results)
}

func TestGetResultByIDEnforcesOwnership(t *testing.T) {
	test := careerTestFixture()
	svc, _ := newResultService(test, nil)

	req := dto.SubmitTestDTO{Answers: []dto.AnswerDTO{
		{QuestionID: test.Questions[0].ID, Answer: intPtr(1)},
		{QuestionID: test.Questions[1].ID, Answer: intPtr(1)},
	}}
	result, err := svc.SubmitTest(42, test.ID, req)
	require.NoError(t, err)

	_, err = svc.GetResultByID(42, result.ID)
	require.NoError(t, err)

	_, err = svc.GetResultByID(7, result.ID)
	assert.ErrorIs(t, err, ErrResultNotFound)

	_, err = svc.GetResultByID(42, result.ID+100)
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestGetMyResultsFiltersByUser(t *testing.T) {
	test := careerTestFixture()
	svc, _ := newResultService(test, nil)

	req := dto.SubmitTestDTO{Answers: []dto.AnswerDTO{
		{QuestionID: test.Questions[0].ID, Answer: intPtr(0)},
		{QuestionID: test.Questions[1].ID, Answer: intPtr(1)},
	}}
	_, err := svc.SubmitTest(42, test.ID, req)
	require.NoError(t, err)

	mine, err := svc.GetMyResults(42)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	others, err := svc.GetMyResults(7)
	require.NoError(t, err)
	assert.Empty(t, others)
}
