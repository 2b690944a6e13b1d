package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/internal/services"
	"github.com/carena-app/backend/validators"
)

type fakeCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[uint]*models.Comment{}}
}

func (f *fakeCommentRepo) Create(comment *models.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) GetByID(id uint) (*models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (f *fakeCommentRepo) FindAllByEntityTypeAndEntityID(entityType string, entityID uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range f.comments {
		if comment.EntityType == entityType && comment.EntityID == entityID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) CountByEntityIDs(entityType string, entityIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(entityIDs))
	for _, id := range entityIDs {
		counts[id] = 0
	}
	for _, comment := range f.comments {
		if comment.EntityType == entityType {
			if _, ok := counts[comment.EntityID]; ok {
				counts[comment.EntityID]++
			}
		}
	}
	return counts, nil
}

func (f *fakeCommentRepo) Update(comment *models.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) Delete(id uint) error {
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) GetAuthorID(id uint) (uint, error) {
	comment, ok := f.comments[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return comment.AuthorID, nil
}

type fakeReplyRepo struct{}

func (f *fakeReplyRepo) Create(reply *models.Reply) error { return nil }

func (f *fakeReplyRepo) GetByID(id uint) (*models.Reply, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReplyRepo) ListByCommentID(commentID uint) ([]models.Reply, error) { return nil, nil }

func (f *fakeReplyRepo) CountByCommentID(commentID uint) (int64, error) { return 0, nil }

func (f *fakeReplyRepo) Update(reply *models.Reply) error { return nil }

func (f *fakeReplyRepo) Delete(id uint) error { return nil }

func (f *fakeReplyRepo) GetAuthorID(id uint) (uint, error) { return 0, gorm.ErrRecordNotFound }

// stubNotificationStore records writes and can be told to fail them.
type stubNotificationStore struct {
	created   []*models.Notification
	createErr error
}

func (s *stubNotificationStore) Create(n *models.Notification) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, n)
	return nil
}

func (s *stubNotificationStore) GetByReceiverSince(receiverUserID uint, since time.Time, page, limit int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}

func (s *stubNotificationStore) GetByReceiverAll(receiverUserID uint, page, limit int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}

func (s *stubNotificationStore) GetUnreadCount(receiverUserID uint, since time.Time) (int64, error) {
	return 0, nil
}

func (s *stubNotificationStore) MarkAsRead(notificationID, receiverUserID uint) error { return nil }
func (s *stubNotificationStore) MarkAllAsRead(receiverUserID uint) error              { return nil }
func (s *stubNotificationStore) PartitionExists(name string) (bool, error)            { return false, nil }
func (s *stubNotificationStore) AddPartition(name string, upperBound time.Time) error { return nil }
func (s *stubNotificationStore) EnsureTable() error                                   { return nil }

type stubAuthorSource struct {
	authorID uint
}

func (s *stubAuthorSource) GetAuthorID(id uint) (uint, error) {
	return s.authorID, nil
}

func newCommentFixture(store *stubNotificationStore, logger *zap.Logger) (*CommentHandler, *fakeCommentRepo) {
	commentRepo := newFakeCommentRepo()
	source := &stubAuthorSource{authorID: 7}
	resolver := services.NewTargetResolver(source, source, source, source)
	notificationSvc := services.NewNotificationService(store, 30, zap.NewNop())
	return NewCommentHandler(commentRepo, &fakeReplyRepo{}, newFakeArticleRepo(), resolver, notificationSvc, logger), commentRepo
}

func TestCreateCommentNotifiesEntityAuthor(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	store := &stubNotificationStore{}
	h, commentRepo := newCommentFixture(store, zap.NewNop())

	c, rec := newJSONContext(e, http.MethodPost, `{"content":"hang in there"}`, 3)
	c.SetParamNames("entity_type", "entity_id")
	c.SetParamValues("post", "42")
	require.NoError(t, h.CreateComment(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, commentRepo.comments, 1)
	require.Len(t, store.created, 1)
	assert.Equal(t, uint(7), store.created[0].ReceiverUserID)
	assert.Equal(t, uint(3), store.created[0].SenderUserID)
}

func TestCreateCommentSurvivesNotificationFailure(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	store := &stubNotificationStore{createErr: errors.New("partition full")}
	core, observed := observer.New(zap.ErrorLevel)
	h, commentRepo := newCommentFixture(store, zap.New(core))

	c, rec := newJSONContext(e, http.MethodPost, `{"content":"hang in there"}`, 3)
	c.SetParamNames("entity_type", "entity_id")
	c.SetParamValues("post", "42")
	require.NoError(t, h.CreateComment(c))

	// The comment write succeeded; the notification failure is logged,
	// not surfaced to the caller.
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, commentRepo.comments, 1)
	require.Equal(t, 1, observed.Len())
	assert.Equal(t, "failed to write comment notification", observed.All()[0].Message)
}

func TestDeleteCommentRequiresAuthor(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	h, commentRepo := newCommentFixture(&stubNotificationStore{}, zap.NewNop())
	require.NoError(t, commentRepo.Create(&models.Comment{EntityType: "post", EntityID: 42, AuthorID: 3, Content: "mine"}))

	c, _ := newJSONContext(e, http.MethodDelete, "", 9)
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := h.DeleteComment(c)

	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Len(t, commentRepo.comments, 1)
}
