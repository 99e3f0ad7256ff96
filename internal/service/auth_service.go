package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/model"
	"github.com/ndthang/edubot/internal/repository"
	"github.com/ndthang/edubot/internal/store"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrInvalidResetStep   = errors.New("otp or reset token is invalid or expired")
)

type AuthService interface {
	Register(req dto.RegisterDTO) (*dto.UserDTO, error)
	Login(req dto.LoginDTO) (*dto.LoginResponseDTO, error)
	GetProfile(userID uint) (*dto.UserDTO, error)
	UpdateProfile(userID uint, req dto.UpdateProfileDTO) (*dto.UserDTO, error)
	ChangePassword(userID uint, req dto.ChangePasswordDTO) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyOtp(ctx context.Context, req dto.VerifyOtpDTO) (*dto.VerifyOtpResponseDTO, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordDTO) error
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
	otpStore store.OTPStore
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenService, otpStore store.OTPStore) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, otpStore: otpStore}
}

func (s *authService) Register(req dto.RegisterDTO) (*dto.UserDTO, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hash),
		Address:  req.Address,
		Role:     "user",
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Register: failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return toUserDTO(&user), nil
}

func (s *authService) Login(req dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &dto.LoginResponseDTO{Token: token, User: *toUserDTO(user)}, nil
}

func (s *authService) GetProfile(userID uint) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	return toUserDTO(user), nil
}

func (s *authService) UpdateProfile(userID uint, req dto.UpdateProfileDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading profile: %w", err)
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return toUserDTO(user), nil
}

func (s *authService) ChangePassword(userID uint, req dto.ChangePasswordDTO) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("error loading user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hash)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	if _, err := s.userRepo.FindByEmail(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the email exists.
			log.Info().Str("email", email).Msg("ForgotPassword requested for unknown email")
			return nil
		}
		return fmt.Errorf("error looking up user: %w", err)
	}

	code, err := generateOtp()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	if err := s.otpStore.SaveOTP(ctx, email, code); err != nil {
		return err
	}
	// TODO: deliver via the mail gateway once SMTP credentials are provisioned.
	log.Info().Str("email", email).Str("otp", code).Msg("Password reset OTP issued")
	return nil
}

func (s *authService) VerifyOtp(ctx context.Context, req dto.VerifyOtpDTO) (*dto.VerifyOtpResponseDTO, error) {
	if err := s.otpStore.VerifyOTP(ctx, req.Email, req.Otp); err != nil {
		if errors.Is(err, store.ErrCodeMismatch) {
			return nil, ErrInvalidResetStep
		}
		return nil, err
	}

	resetToken := uuid.NewString()
	if err := s.otpStore.SaveResetToken(ctx, req.Email, resetToken); err != nil {
		return nil, err
	}
	return &dto.VerifyOtpResponseDTO{ResetToken: resetToken}, nil
}

func (s *authService) ResetPassword(ctx context.Context, req dto.ResetPasswordDTO) error {
	if err := s.otpStore.ConsumeResetToken(ctx, req.Email, req.ResetToken); err != nil {
		if errors.Is(err, store.ErrCodeMismatch) {
			return ErrInvalidResetStep
		}
		return err
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hash)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func toUserDTO(user *model.User) *dto.UserDTO {
	var out dto.UserDTO
	if err := copier.Copy(&out, user); err != nil {
		log.Error().Err(err).Msg("Failed to copy user model to DTO")
	}
	return &out
}

func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
