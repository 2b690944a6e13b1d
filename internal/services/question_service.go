package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/carena-app/backend/internal/ai"
	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/internal/repositories"
)

// ErrAnswerUnavailable is returned when every completion attempt failed or
// came back too short; no question row is persisted in that case.
var ErrAnswerUnavailable = errors.New("AI answer unavailable")

const (
	defaultMaxAttempts    = 3
	defaultMinAnswerRunes = 20
	defaultInitialBackoff = time.Second
)

// QuestionService drives the AI Q&A flow: language detection, bounded retry
// on short answers, HTML sanitization, persistence.
type QuestionService struct {
	questions      repositories.QuestionRepository
	completer      ai.Completer
	sanitizer      *bluemonday.Policy
	logger         *zap.Logger
	maxAttempts    int
	minAnswerRunes int
	initialBackoff time.Duration
	sleep          func(time.Duration)
}

func NewQuestionService(questions repositories.QuestionRepository, completer ai.Completer, logger *zap.Logger) *QuestionService {
	return &QuestionService{
		questions:      questions,
		completer:      completer,
		sanitizer:      bluemonday.UGCPolicy(),
		logger:         logger,
		maxAttempts:    defaultMaxAttempts,
		minAnswerRunes: defaultMinAnswerRunes,
		initialBackoff: defaultInitialBackoff,
		sleep:          time.Sleep,
	}
}

// Ask submits the question to the AI provider and persists the sanitized
// answer. Short or failed completions are retried with doubling backoff;
// after exhaustion nothing is persisted.
func (s *QuestionService) Ask(ctx context.Context, userID uint, req models.CreateQuestionRequest) (*models.Question, error) {
	language := ai.DetectLanguage(req.Content)

	var answer string
	var lastErr error
	backoff := s.initialBackoff
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		candidate, err := s.completer.Complete(ctx, language, req.Content, req.ImageURLs)
		if err != nil {
			lastErr = err
			s.logger.Warn("completion attempt failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		} else if s.tooShort(candidate) {
			lastErr = ErrAnswerUnavailable
			s.logger.Warn("completion answer too short",
				zap.Int("attempt", attempt),
				zap.Int("runes", len([]rune(candidate))),
			)
		} else {
			answer = candidate
			lastErr = nil
			break
		}
		if attempt < s.maxAttempts {
			s.sleep(backoff)
			backoff *= 2
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	question := &models.Question{
		UserID:   userID,
		Content:  req.Content,
		Answer:   s.sanitizer.Sanitize(answer),
		Language: language,
	}
	for _, url := range req.ImageURLs {
		question.Images = append(question.Images, models.Image{URL: url})
	}
	if err := s.questions.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) tooShort(answer string) bool {
	return len([]rune(strings.TrimSpace(answer))) < s.minAnswerRunes
}

func (s *QuestionService) Get(id uint) (*models.Question, error) {
	return s.questions.GetByID(id)
}

func (s *QuestionService) ListByUser(userID uint, page, limit int) ([]models.Question, int64, error) {
	return s.questions.ListByUserID(userID, page, limit)
}
