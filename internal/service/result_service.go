package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/model"
	"github.com/ndthang/edubot/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrResultNotFound is returned for unknown result ids and for results that
// belong to a different user.
var ErrResultNotFound = errors.New("test result not found")

type ResultService interface {
	SubmitTest(userID uint, testID uint, req dto.SubmitTestDTO) (*dto.TestResultDTO, error)
	GetMyResults(userID uint) ([]dto.TestResultSummaryDTO, error)
	GetResultByID(userID uint, resultID uint) (*dto.TestResultDTO, error)
}

type resultService struct {
	testRepo   repository.TestRepository
	resultRepo repository.ResultRepository
	majorRepo  repository.MajorRepository
	scoring    ScoringService
}

func NewResultService(
	testRepo repository.TestRepository,
	resultRepo repository.ResultRepository,
	majorRepo repository.MajorRepository,
	scoring ScoringService,
) ResultService {
	return &resultService{
		testRepo:   testRepo,
		resultRepo: resultRepo,
		majorRepo:  majorRepo,
		scoring:    scoring,
	}
}

func (s *resultService) SubmitTest(userID uint, testID uint, req dto.SubmitTestDTO) (*dto.TestResultDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		log.Error().Err(err).Uint("testID", testID).Msg("SubmitTest: failed to load test")
		return nil, fmt.Errorf("error loading test %d: %w", testID, err)
	}
	if len(test.Questions) == 0 {
		return nil, &InvalidSubmissionError{Reason: fmt.Sprintf("test %d has no questions", testID)}
	}

	outcome, err := s.scoring.Score(test, req.Answers)
	if err != nil {
		return nil, err
	}

	result := model.TestResult{
		UserID:      userID,
		TestID:      testID,
		ResultLabel: outcome.Label,
		Description: outcome.Description,
		Scores:      outcome.Scores,
	}
	for _, trait := range outcome.TopTraits {
		majors, findErr := s.majorRepo.FindByTrait(trait)
		if findErr != nil {
			log.Warn().Err(findErr).Str("trait", trait).Msg("SubmitTest: could not load recommended majors")
			continue
		}
		result.Majors = append(result.Majors, majors...)
	}

	if err := s.resultRepo.Create(&result); err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("userID", userID).Msg("SubmitTest: failed to persist result")
		return nil, fmt.Errorf("error saving test result: %w", err)
	}

	result.Test = *test
	return toResultDTO(&result), nil
}

func (s *resultService) GetMyResults(userID uint) ([]dto.TestResultSummaryDTO, error) {
	results, err := s.resultRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetMyResults: repository error")
		return nil, fmt.Errorf("error fetching result history: %w", err)
	}

	dtos := make([]dto.TestResultSummaryDTO, 0, len(results))
	for _, r := range results {
		var summary dto.TestResultSummaryDTO
		if errCp := copier.Copy(&summary, &r); errCp != nil {
			log.Error().Err(errCp).Uint("resultID", r.ID).Msg("GetMyResults: copy to summary DTO failed")
			continue
		}
		summary.Result = r.ResultLabel
		summary.TestName = r.Test.Name
		summary.TestType = r.Test.Type
		summary.Date = r.CreatedAt
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

func (s *resultService) GetResultByID(userID uint, resultID uint) (*dto.TestResultDTO, error) {
	result, err := s.resultRepo.FindByIDWithDetails(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		log.Error().Err(err).Uint("resultID", resultID).Msg("GetResultByID: repository error")
		return nil, fmt.Errorf("error fetching result %d: %w", resultID, err)
	}
	if result.UserID != userID {
		return nil, ErrResultNotFound
	}
	return toResultDTO(result), nil
}

func toResultDTO(result *model.TestResult) *dto.TestResultDTO {
	resp := &dto.TestResultDTO{
		ID:          result.ID,
		TestID:      result.TestID,
		TestName:    result.Test.Name,
		TestType:    result.Test.Type,
		Result:      result.ResultLabel,
		Description: result.Description,
		Date:        result.CreatedAt,
	}
	for _, score := range result.Scores {
		resp.Score = append(resp.Score, dto.ScoreEntryDTO{Key: score.Trait, Value: score.Value})
	}
	for _, major := range result.Majors {
		resp.RecommendedMajors = append(resp.RecommendedMajors, dto.MajorBriefDTO{
			ID:   major.ID,
			Name: major.Name,
			Code: major.Code,
		})
	}
	return resp
}
