package services

import (
	"errors"

	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/internal/repositories"
	"go.uber.org/zap"
)

// ErrDuplicateReaction is returned when uniqueness enforcement is on and
// the user already applied this reaction kind to this target.
var ErrDuplicateReaction = errors.New("reaction already exists")

// AddReactionInput carries everything needed to record one reaction
type AddReactionInput struct {
	EntityType string
	EntityID   uint
	TargetType models.TargetType
	TargetID   uint
	ReactionID uint
	UserID     uint
}

// ReactionService records reactions against polymorphic targets and serves
// catalog-normalized aggregations.
type ReactionService struct {
	reactions     repositories.ReactionRepository
	notifications *NotificationService
	resolver      *TargetResolver
	unique        bool
	logger        *zap.Logger
}

func NewReactionService(
	reactions repositories.ReactionRepository,
	notifications *NotificationService,
	resolver *TargetResolver,
	unique bool,
	logger *zap.Logger,
) *ReactionService {
	return &ReactionService{
		reactions:     reactions,
		notifications: notifications,
		resolver:      resolver,
		unique:        unique,
		logger:        logger,
	}
}

// Add resolves the target's author, inserts the reaction row, and notifies
// the author when someone else reacted. Returns ErrTargetNotFound when the
// target row is missing.
func (s *ReactionService) Add(input AddReactionInput) (*models.ReactionEntity, error) {
	authorID, err := s.resolver.ResolveAuthor(input.TargetType, input.TargetID)
	if err != nil {
		return nil, err
	}

	if s.unique {
		exists, err := s.reactions.Exists(input.TargetType, input.TargetID, input.ReactionID, input.UserID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateReaction
		}
	}

	entity := &models.ReactionEntity{
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		TargetType: input.TargetType,
		TargetID:   input.TargetID,
		ReactionID: input.ReactionID,
		UserID:     input.UserID,
	}
	if err := s.reactions.Create(entity); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		Type:           models.NotificationTypeReaction,
		ReceiverUserID: authorID,
		SenderUserID:   input.UserID,
		TargetType:     input.TargetType,
		TargetID:       input.TargetID,
		EntityType:     input.EntityType,
		EntityID:       input.EntityID,
	}
	if err := s.notifications.Notify(notification); err != nil {
		// The reaction is already persisted; a failed notification write
		// must not fail the request.
		s.logger.Error("failed to write reaction notification",
			zap.Uint("receiver_user_id", authorID),
			zap.Error(err),
		)
	}

	return entity, nil
}

// Remove deletes the matching reaction row; an absent row is a no-op
func (s *ReactionService) Remove(targetType models.TargetType, targetID, reactionID, userID uint) error {
	_, err := s.reactions.Delete(targetType, targetID, reactionID, userID)
	return err
}

// ForTargets aggregates per-kind counts for a page of targets and, when a
// viewer is given, which kinds the viewer applied. Every requested target
// reports a count for every catalog kind, in catalog order, so a zero-kind
// never goes missing from the result.
func (s *ReactionService) ForTargets(targetType models.TargetType, targetIDs []uint, viewerID uint) (map[uint]models.TargetReactions, error) {
	catalog, err := s.reactions.ListCatalog()
	if err != nil {
		return nil, err
	}

	result := make(map[uint]models.TargetReactions, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}

	rows, err := s.reactions.CountsByTarget(targetType, targetIDs)
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]map[uint]int64, len(targetIDs))
	for _, row := range rows {
		if counts[row.TargetID] == nil {
			counts[row.TargetID] = make(map[uint]int64, len(catalog))
		}
		counts[row.TargetID][row.ReactionID] = row.Count
	}

	viewerKinds := make(map[uint][]uint)
	if viewerID != 0 {
		viewerRows, err := s.reactions.UserRowsByTarget(targetType, targetIDs, viewerID)
		if err != nil {
			return nil, err
		}
		for _, row := range viewerRows {
			viewerKinds[row.TargetID] = append(viewerKinds[row.TargetID], row.ReactionID)
		}
	}

	for _, targetID := range targetIDs {
		entry := models.TargetReactions{
			Reactions:     make([]models.ReactionCount, 0, len(catalog)),
			UserReactions: []uint{},
		}
		for _, kind := range catalog {
			entry.Reactions = append(entry.Reactions, models.ReactionCount{
				ReactionID: kind.ID,
				Count:      counts[targetID][kind.ID],
			})
		}
		if kinds, ok := viewerKinds[targetID]; ok {
			entry.UserReactions = kinds
		}
		result[targetID] = entry
	}
	return result, nil
}

// CountForEntities is the badge variant: total reactions per container
// entity, no per-kind breakdown.
func (s *ReactionService) CountForEntities(entityType string, entityIDs []uint) (map[uint]int64, error) {
	if len(entityIDs) == 0 {
		return map[uint]int64{}, nil
	}
	return s.reactions.TotalCountsByEntity(entityType, entityIDs)
}

// Catalog exposes the reaction kinds in catalog order
func (s *ReactionService) Catalog() ([]models.Reaction, error) {
	return s.reactions.ListCatalog()
}
