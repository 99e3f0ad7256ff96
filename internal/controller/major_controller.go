package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/service"
)

type MajorController struct {
	majorService service.MajorService
}

func NewMajorController(majorService service.MajorService) *MajorController {
	return &MajorController{majorService: majorService}
}

// ListMajors godoc
// @Summary List majors with optional search and filters
// @Tags Majors
// @Produce json
// @Param search query string false "Name or code substring"
// @Param department query string false "Department filter"
// @Param campus query string false "Campus filter"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} dto.MajorListDTO
// @Router /majors [get]
func (c *MajorController) ListMajors(ctx *gin.Context) {
	var q dto.MajorQueryDTO
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid query parameters", Details: []string{err.Error()}})
		return
	}
	list, err := c.majorService.ListMajors(q)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve majors"})
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// GetMajor godoc
// @Summary Get one major
// @Tags Majors
// @Produce json
// @Param id path int true "Major ID"
// @Success 200 {object} dto.MajorDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /majors/{id} [get]
func (c *MajorController) GetMajor(ctx *gin.Context) {
	majorID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid major ID format"})
		return
	}
	major, err := c.majorService.GetMajor(uint(majorID))
	if err != nil {
		if errors.Is(err, service.ErrMajorNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Major not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve major"})
		return
	}
	ctx.JSON(http.StatusOK, major)
}
