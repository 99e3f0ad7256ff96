package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ndthang/edubot/config"
	"github.com/redis/go-redis/v9"
)

const (
	otpTTL        = 10 * time.Minute
	resetTokenTTL = 15 * time.Minute
)

var ErrCodeMismatch = errors.New("code does not match or has expired")

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// OTPStore holds short-lived password-reset state: the emailed OTP and, once
// the OTP is verified, the reset token that authorizes the new password.
type OTPStore interface {
	SaveOTP(ctx context.Context, email, code string) error
	VerifyOTP(ctx context.Context, email, code string) error
	SaveResetToken(ctx context.Context, email, token string) error
	ConsumeResetToken(ctx context.Context, email, token string) error
}

type otpStore struct {
	rdb *redis.Client
}

func NewOTPStore(rdb *redis.Client) OTPStore {
	return &otpStore{rdb: rdb}
}

func otpKey(email string) string   { return "otp:" + email }
func resetKey(email string) string { return "reset:" + email }

func (s *otpStore) SaveOTP(ctx context.Context, email, code string) error {
	if err := s.rdb.Set(ctx, otpKey(email), code, otpTTL).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

func (s *otpStore) VerifyOTP(ctx context.Context, email, code string) error {
	stored, err := s.rdb.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to read otp: %w", err)
	}
	if stored != code {
		return ErrCodeMismatch
	}
	// One shot: a verified OTP cannot be replayed.
	s.rdb.Del(ctx, otpKey(email))
	return nil
}

func (s *otpStore) SaveResetToken(ctx context.Context, email, token string) error {
	if err := s.rdb.Set(ctx, resetKey(email), token, resetTokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return nil
}

func (s *otpStore) ConsumeResetToken(ctx context.Context, email, token string) error {
	stored, err := s.rdb.Get(ctx, resetKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to read reset token: %w", err)
	}
	if stored != token {
		return ErrCodeMismatch
	}
	s.rdb.Del(ctx, resetKey(email))
	return nil
}
