package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/middleware"
	"github.com/ndthang/edubot/internal/service"
	"github.com/rs/zerolog/log"
)

type TestController struct {
	testService   service.TestService
	resultService service.ResultService
}

func NewTestController(testService service.TestService, resultService service.ResultService) *TestController {
	return &TestController{testService: testService, resultService: resultService}
}

// GetAllTests godoc
// @Summary List all available tests
// @Tags Tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /test [get]
func (c *TestController) GetAllTests(ctx *gin.Context) {
	tests, err := c.testService.GetAllTests()
	if err != nil {
		log.Error().Err(err).Msg("GetAllTests: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve tests"})
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary Get one test with its ordered questions and options
// @Tags Tests
// @Produce json
// @Param id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /test/{id} [get]
func (c *TestController) GetTestDetails(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test ID format"})
		return
	}
	test, err := c.testService.GetTestDetails(uint(testID))
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Test not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve test"})
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// SubmitTest godoc
// @Summary Submit all answers for a test and receive the scored result
// @Tags Tests
// @Accept json
// @Produce json
// @Param id path int true "Test ID"
// @Param submission body dto.SubmitTestDTO true "Answers in question order"
// @Success 200 {object} dto.TestResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /test/{id}/submit [post]
func (c *TestController) SubmitTest(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test ID format"})
		return
	}

	var req dto.SubmitTestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	userID := middleware.CurrentUserID(ctx)
	log.Info().Uint64("testID", testID).Uint("userID", userID).Int("answerCount", len(req.Answers)).Msg("Test submission received")

	result, err := c.resultService.SubmitTest(userID, uint(testID), req)
	if err != nil {
		var invalid *service.InvalidSubmissionError
		switch {
		case errors.Is(err, service.ErrTestNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Test not found"})
		case errors.As(err, &invalid):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: invalid.Error()})
		default:
			log.Error().Err(err).Uint64("testID", testID).Msg("SubmitTest: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit test"})
		}
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetMyResults godoc
// @Summary List the authenticated user's past results, newest first
// @Tags Tests
// @Produce json
// @Success 200 {array} dto.TestResultSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /my-results [get]
func (c *TestController) GetMyResults(ctx *gin.Context) {
	results, err := c.resultService.GetMyResults(middleware.CurrentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve result history"})
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// GetResultByID godoc
// @Summary Get one persisted result of the authenticated user
// @Tags Tests
// @Produce json
// @Param id path int true "Result ID"
// @Success 200 {object} dto.TestResultDTO
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /test-results/{id} [get]
func (c *TestController) GetResultByID(ctx *gin.Context) {
	resultID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid result ID format"})
		return
	}
	result, err := c.resultService.GetResultByID(middleware.CurrentUserID(ctx), uint(resultID))
	if err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Result not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve result"})
		return
	}
	ctx.JSON(http.StatusOK, result)
}
