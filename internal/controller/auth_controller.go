package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/middleware"
	"github.com/ndthang/edubot/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Create a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterDTO true "Registration data"
// @Success 201 {object} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	user, err := c.authService.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Email is already registered"})
			return
		}
		log.Error().Err(err).Msg("Register: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to register"})
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Exchange credentials for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginDTO true "Credentials"
// @Success 200 {object} dto.LoginResponseDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.authService.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid email or password"})
			return
		}
		log.Error().Err(err).Msg("Login: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to log in"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Profile godoc
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	user, err := c.authService.GetProfile(middleware.CurrentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "User not found"})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update profile fields
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileDTO true "Fields to update"
// @Success 200 {object} dto.UserDTO
// @Security BearerAuth
// @Router /auth/update [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	user, err := c.authService.UpdateProfile(middleware.CurrentUserID(ctx), req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update profile"})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change password for the authenticated user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.ChangePasswordDTO true "Current and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/change-password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.authService.ChangePassword(middleware.CurrentUserID(ctx), req); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Current password is incorrect"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to change password"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password changed"})
}

// ForgotPassword godoc
// @Summary Request a password-reset OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.ForgotPasswordDTO true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Router /auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.authService.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		log.Error().Err(err).Msg("ForgotPassword: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to process request"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "If the email exists, an OTP has been sent"})
}

// VerifyOtp godoc
// @Summary Exchange a valid OTP for a reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.VerifyOtpDTO true "Email and OTP"
// @Success 200 {object} dto.VerifyOtpResponseDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/verify-otp [post]
func (c *AuthController) VerifyOtp(ctx *gin.Context) {
	var req dto.VerifyOtpDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.authService.VerifyOtp(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidResetStep) {
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "OTP is invalid or expired"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to verify OTP"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ResetPassword godoc
// @Summary Set a new password using a reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordDTO true "Email, reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.authService.ResetPassword(ctx.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrInvalidResetStep) {
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Reset token is invalid or expired"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to reset password"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset"})
}

// Logout godoc
// @Summary Log out (token discard is client-side)
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	// Stateless JWTs: nothing to revoke server-side.
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}
