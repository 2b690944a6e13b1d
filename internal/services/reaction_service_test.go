package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/internal/repositories"
)

type fakeAuthorSource struct {
	authors map[uint]uint
}

func (f *fakeAuthorSource) GetAuthorID(id uint) (uint, error) {
	author, ok := f.authors[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return author, nil
}

type fakeReactionRepo struct {
	catalog []models.Reaction
	rows    []models.ReactionEntity
}

func (f *fakeReactionRepo) ListCatalog() ([]models.Reaction, error) {
	return f.catalog, nil
}

func (f *fakeReactionRepo) Create(entity *models.ReactionEntity) error {
	entity.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *entity)
	return nil
}

func (f *fakeReactionRepo) Delete(targetType models.TargetType, targetID, reactionID, userID uint) (int64, error) {
	var kept []models.ReactionEntity
	var removed int64
	for _, row := range f.rows {
		if row.TargetType == targetType && row.TargetID == targetID && row.ReactionID == reactionID && row.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return removed, nil
}

func (f *fakeReactionRepo) Exists(targetType models.TargetType, targetID, reactionID, userID uint) (bool, error) {
	for _, row := range f.rows {
		if row.TargetType == targetType && row.TargetID == targetID && row.ReactionID == reactionID && row.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReactionRepo) CountsByTarget(targetType models.TargetType, targetIDs []uint) ([]repositories.TargetReactionCount, error) {
	counts := make(map[[2]uint]int64)
	for _, row := range f.rows {
		if row.TargetType != targetType {
			continue
		}
		for _, id := range targetIDs {
			if row.TargetID == id {
				counts[[2]uint{row.TargetID, row.ReactionID}]++
			}
		}
	}
	var out []repositories.TargetReactionCount
	for key, count := range counts {
		out = append(out, repositories.TargetReactionCount{TargetID: key[0], ReactionID: key[1], Count: count})
	}
	return out, nil
}

func (f *fakeReactionRepo) UserRowsByTarget(targetType models.TargetType, targetIDs []uint, userID uint) ([]models.ReactionEntity, error) {
	var out []models.ReactionEntity
	for _, row := range f.rows {
		if row.TargetType != targetType || row.UserID != userID {
			continue
		}
		for _, id := range targetIDs {
			if row.TargetID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (f *fakeReactionRepo) TotalCountsByEntity(entityType string, entityIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(entityIDs))
	for _, id := range entityIDs {
		out[id] = 0
	}
	for _, row := range f.rows {
		if row.EntityType != entityType {
			continue
		}
		if _, ok := out[row.EntityID]; ok {
			out[row.EntityID]++
		}
	}
	return out, nil
}

func defaultCatalog() []models.Reaction {
	return []models.Reaction{
		{ID: 1, Name: "like"},
		{ID: 2, Name: "support"},
		{ID: 3, Name: "empathize"},
	}
}

func newReactionFixture(unique bool) (*ReactionService, *fakeReactionRepo, *fakeNotificationRepo) {
	reactions := &fakeReactionRepo{catalog: defaultCatalog()}
	notifications := &fakeNotificationRepo{}
	posts := &fakeAuthorSource{authors: map[uint]uint{42: 7, 43: 7}}
	empty := &fakeAuthorSource{authors: map[uint]uint{}}
	resolver := NewTargetResolver(empty, posts, empty, empty)
	notificationSvc := NewNotificationService(notifications, 30, zap.NewNop())
	svc := NewReactionService(reactions, notificationSvc, resolver, unique, zap.NewNop())
	return svc, reactions, notifications
}

func TestAddReactionNotifiesTargetAuthor(t *testing.T) {
	svc, reactions, notifications := newReactionFixture(true)

	entity, err := svc.Add(AddReactionInput{
		EntityType: "post",
		EntityID:   42,
		TargetType: models.TargetPost,
		TargetID:   42,
		ReactionID: 1,
		UserID:     3,
	})

	require.NoError(t, err)
	assert.NotZero(t, entity.ID)
	require.Len(t, reactions.rows, 1)
	require.Len(t, notifications.created, 1)
	assert.Equal(t, models.NotificationTypeReaction, notifications.created[0].Type)
	assert.Equal(t, uint(7), notifications.created[0].ReceiverUserID)
	assert.Equal(t, uint(3), notifications.created[0].SenderUserID)
}

func TestAddReactionToOwnContentSkipsNotification(t *testing.T) {
	svc, reactions, notifications := newReactionFixture(true)

	_, err := svc.Add(AddReactionInput{
		EntityType: "post",
		EntityID:   42,
		TargetType: models.TargetPost,
		TargetID:   42,
		ReactionID: 1,
		UserID:     7,
	})

	require.NoError(t, err)
	assert.Len(t, reactions.rows, 1, "the reaction itself is still recorded")
	assert.Empty(t, notifications.created)
}

func TestAddReactionMissingTarget(t *testing.T) {
	svc, reactions, _ := newReactionFixture(true)

	_, err := svc.Add(AddReactionInput{
		EntityType: "post",
		EntityID:   999,
		TargetType: models.TargetPost,
		TargetID:   999,
		ReactionID: 1,
		UserID:     3,
	})

	assert.ErrorIs(t, err, ErrTargetNotFound)
	assert.Empty(t, reactions.rows)
}

func TestAddDuplicateReaction(t *testing.T) {
	svc, reactions, _ := newReactionFixture(true)

	input := AddReactionInput{
		EntityType: "post",
		EntityID:   42,
		TargetType: models.TargetPost,
		TargetID:   42,
		ReactionID: 1,
		UserID:     3,
	}
	_, err := svc.Add(input)
	require.NoError(t, err)

	_, err = svc.Add(input)
	assert.ErrorIs(t, err, ErrDuplicateReaction)
	assert.Len(t, reactions.rows, 1)
}

func TestAddDuplicateAllowedWhenUniquenessOff(t *testing.T) {
	svc, reactions, _ := newReactionFixture(false)

	input := AddReactionInput{
		EntityType: "post",
		EntityID:   42,
		TargetType: models.TargetPost,
		TargetID:   42,
		ReactionID: 1,
		UserID:     3,
	}
	_, err := svc.Add(input)
	require.NoError(t, err)
	_, err = svc.Add(input)
	require.NoError(t, err)
	assert.Len(t, reactions.rows, 2)
}

func TestRemoveAbsentReactionIsNoop(t *testing.T) {
	svc, _, _ := newReactionFixture(true)

	err := svc.Remove(models.TargetPost, 42, 1, 3)
	assert.NoError(t, err)
}

func TestForTargetsNormalizesToCatalog(t *testing.T) {
	svc, _, _ := newReactionFixture(true)

	_, err := svc.Add(AddReactionInput{EntityType: "post", EntityID: 42, TargetType: models.TargetPost, TargetID: 42, ReactionID: 1, UserID: 3})
	require.NoError(t, err)
	_, err = svc.Add(AddReactionInput{EntityType: "post", EntityID: 42, TargetType: models.TargetPost, TargetID: 42, ReactionID: 2, UserID: 4})
	require.NoError(t, err)

	result, err := svc.ForTargets(models.TargetPost, []uint{42, 43}, 3)
	require.NoError(t, err)
	require.Len(t, result, 2)

	reacted := result[42]
	require.Len(t, reacted.Reactions, 3, "every catalog kind appears even at count zero")
	assert.Equal(t, []models.ReactionCount{
		{ReactionID: 1, Count: 1},
		{ReactionID: 2, Count: 1},
		{ReactionID: 3, Count: 0},
	}, reacted.Reactions)
	assert.Equal(t, []uint{1}, reacted.UserReactions)

	untouched := result[43]
	require.Len(t, untouched.Reactions, 3)
	for _, rc := range untouched.Reactions {
		assert.Zero(t, rc.Count)
	}
	assert.NotNil(t, untouched.UserReactions)
	assert.Empty(t, untouched.UserReactions)
}

func TestForTargetsCountsRestoredAfterRemove(t *testing.T) {
	svc, _, _ := newReactionFixture(true)

	_, err := svc.Add(AddReactionInput{EntityType: "post", EntityID: 42, TargetType: models.TargetPost, TargetID: 42, ReactionID: 1, UserID: 3})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(models.TargetPost, 42, 1, 3))

	result, err := svc.ForTargets(models.TargetPost, []uint{42}, 0)
	require.NoError(t, err)
	for _, rc := range result[42].Reactions {
		assert.Zero(t, rc.Count)
	}
}

func TestCountForEntitiesZeroFills(t *testing.T) {
	svc, _, _ := newReactionFixture(true)

	_, err := svc.Add(AddReactionInput{EntityType: "post", EntityID: 42, TargetType: models.TargetPost, TargetID: 42, ReactionID: 1, UserID: 3})
	require.NoError(t, err)

	counts, err := svc.CountForEntities("post", []uint{42, 43})
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{42: 1, 43: 0}, counts)
}

func TestResolveAuthorUnknownType(t *testing.T) {
	empty := &fakeAuthorSource{authors: map[uint]uint{}}
	resolver := NewTargetResolver(empty, empty, empty, empty)

	_, err := resolver.ResolveAuthor(models.TargetType("story"), 1)
	assert.True(t, errors.Is(err, ErrTargetNotFound))
}
