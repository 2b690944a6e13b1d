package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/carena-app/backend/internal/models"
)

type completion struct {
	answer string
	err    error
}

type scriptedCompleter struct {
	script []completion
	calls  int
}

func (s *scriptedCompleter) Complete(ctx context.Context, language, question string, imageURLs []string) (string, error) {
	step := s.script[s.calls]
	s.calls++
	return step.answer, step.err
}

type fakeQuestionRepo struct {
	created []models.Question
}

func (f *fakeQuestionRepo) Create(q *models.Question) error {
	q.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *q)
	return nil
}

func (f *fakeQuestionRepo) GetByID(id uint) (*models.Question, error) {
	for _, q := range f.created {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuestionRepo) ListByUserID(userID uint, page, limit int) ([]models.Question, int64, error) {
	var out []models.Question
	for _, q := range f.created {
		if q.UserID == userID {
			out = append(out, q)
		}
	}
	return out, int64(len(out)), nil
}

func newQuestionFixture(script []completion) (*QuestionService, *fakeQuestionRepo, *scriptedCompleter, *[]time.Duration) {
	repo := &fakeQuestionRepo{}
	completer := &scriptedCompleter{script: script}
	svc := NewQuestionService(repo, completer, zap.NewNop())
	var slept []time.Duration
	svc.sleep = func(d time.Duration) { slept = append(slept, d) }
	return svc, repo, completer, &slept
}

const goodAnswer = "Rest, hydration, and talking to your care team are all reasonable first steps."

func TestAskPersistsSanitizedAnswer(t *testing.T) {
	svc, repo, completer, _ := newQuestionFixture([]completion{
		{answer: goodAnswer + `<script>alert("x")</script>`},
	})

	question, err := svc.Ask(context.Background(), 7, models.CreateQuestionRequest{
		Content: "What should I do about fatigue after treatment?",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, completer.calls)
	assert.Equal(t, goodAnswer, question.Answer)
	assert.NotContains(t, question.Answer, "<script>")
	assert.Equal(t, "en", question.Language)
	require.Len(t, repo.created, 1)
	assert.Equal(t, uint(7), repo.created[0].UserID)
}

func TestAskRetriesShortAnswers(t *testing.T) {
	svc, repo, completer, slept := newQuestionFixture([]completion{
		{answer: "ok"},
		{answer: goodAnswer},
	})

	question, err := svc.Ask(context.Background(), 7, models.CreateQuestionRequest{
		Content: "What should I do about fatigue after treatment?",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, completer.calls)
	assert.Equal(t, goodAnswer, question.Answer)
	require.Len(t, *slept, 1)
	assert.Equal(t, time.Second, (*slept)[0])
	assert.Len(t, repo.created, 1)
}

func TestAskRetriesWithDoublingBackoff(t *testing.T) {
	svc, _, completer, slept := newQuestionFixture([]completion{
		{err: errors.New("rate limited")},
		{answer: "ok"},
		{answer: goodAnswer},
	})

	_, err := svc.Ask(context.Background(), 7, models.CreateQuestionRequest{
		Content: "What should I do about fatigue after treatment?",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, completer.calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *slept)
}

func TestAskGivesUpAfterMaxAttempts(t *testing.T) {
	svc, repo, completer, _ := newQuestionFixture([]completion{
		{answer: "ok"},
		{answer: "ok"},
		{answer: "ok"},
	})

	_, err := svc.Ask(context.Background(), 7, models.CreateQuestionRequest{
		Content: "What should I do about fatigue after treatment?",
	})

	assert.ErrorIs(t, err, ErrAnswerUnavailable)
	assert.Equal(t, 3, completer.calls)
	assert.Empty(t, repo.created, "failed exchanges are never persisted")
}

func TestAskReturnsProviderError(t *testing.T) {
	providerErr := errors.New("provider unavailable")
	svc, repo, _, _ := newQuestionFixture([]completion{
		{err: providerErr},
		{err: providerErr},
		{err: providerErr},
	})

	_, err := svc.Ask(context.Background(), 7, models.CreateQuestionRequest{
		Content: "What should I do about fatigue after treatment?",
	})

	assert.ErrorIs(t, err, providerErr)
	assert.Empty(t, repo.created)
}
