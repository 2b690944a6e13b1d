package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCodeMismatch is returned when the submitted code is wrong or expired
var ErrCodeMismatch = errors.New("verification code mismatch")

// CodeSender delivers a verification code to an email address
type CodeSender interface {
	SendVerificationCode(to, code string) error
}

const codeTTL = 10 * time.Minute

// VerificationService issues short-lived email verification codes backed by
// redis TTLs.
type VerificationService struct {
	redis  *redis.Client
	sender CodeSender
}

func NewVerificationService(redisClient *redis.Client, sender CodeSender) *VerificationService {
	return &VerificationService{redis: redisClient, sender: sender}
}

// SendCode generates a 6-digit code, stores it with a TTL and emails it
func (s *VerificationService) SendCode(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, codeKey(email), code, codeTTL).Err(); err != nil {
		return err
	}
	return s.sender.SendVerificationCode(email, code)
}

// VerifyCode checks the submitted code and consumes it on success
func (s *VerificationService) VerifyCode(ctx context.Context, email, code string) error {
	stored, err := s.redis.Get(ctx, codeKey(email)).Result()
	if err == redis.Nil {
		return ErrCodeMismatch
	}
	if err != nil {
		return err
	}
	if stored != code {
		return ErrCodeMismatch
	}
	return s.redis.Del(ctx, codeKey(email)).Err()
}

func codeKey(email string) string {
	return "verification:" + email
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
