package service

import (
	"errors"
	"fmt"

	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/model"
	"github.com/ndthang/edubot/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrTestNotFound is returned when a requested test id does not exist.
var ErrTestNotFound = errors.New("test not found")

type TestService interface {
	GetAllTests() ([]dto.TestSummaryDTO, error)
	GetTestDetails(testID uint) (*dto.TestResponseDTO, error)
}

type testService struct {
	testRepo repository.TestRepository
}

func NewTestService(testRepo repository.TestRepository) TestService {
	return &testService{testRepo: testRepo}
}

func (s *testService) GetAllTests() ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tests from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	dtos := make([]dto.TestSummaryDTO, 0, len(testsWithCount))
	for _, twc := range testsWithCount {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:            twc.Test.ID,
			Name:          twc.Test.Name,
			Type:          twc.Test.Type,
			Description:   twc.Test.Description,
			QuestionCount: twc.QuestionCount,
		})
	}
	return dtos, nil
}

func (s *testService) GetTestDetails(testID uint) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to load test details")
		return nil, fmt.Errorf("error fetching test %d: %w", testID, err)
	}
	return toTestResponseDTO(test), nil
}

// toTestResponseDTO flattens options to plain strings; the zero-based
// position of each option is the value clients submit for it.
func toTestResponseDTO(test *model.Test) *dto.TestResponseDTO {
	resp := &dto.TestResponseDTO{
		ID:          test.ID,
		Name:        test.Name,
		Type:        test.Type,
		Description: test.Description,
		Questions:   make([]dto.QuestionDTO, 0, len(test.Questions)),
	}
	for _, q := range test.Questions {
		options := make([]string, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, o.Text)
		}
		resp.Questions = append(resp.Questions, dto.QuestionDTO{
			ID:       q.ID,
			Question: q.Prompt,
			Options:  options,
		})
	}
	return resp
}
