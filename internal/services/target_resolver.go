package services

import (
	"errors"
	"fmt"

	"github.com/carena-app/backend/internal/models"
	"gorm.io/gorm"
)

// ErrTargetNotFound is returned when a polymorphic target row does not exist
var ErrTargetNotFound = errors.New("target not found")

// AuthorSource looks up the author of one kind of content entity
type AuthorSource interface {
	GetAuthorID(id uint) (uint, error)
}

// TargetResolver dispatches author lookups over the four reactable entity
// kinds. Reactions and notifications both need the target's author without
// caring which table it lives in.
type TargetResolver struct {
	sources map[models.TargetType]AuthorSource
}

func NewTargetResolver(diaries, posts, comments, replies AuthorSource) *TargetResolver {
	return &TargetResolver{
		sources: map[models.TargetType]AuthorSource{
			models.TargetDiary:   diaries,
			models.TargetPost:    posts,
			models.TargetComment: comments,
			models.TargetReply:   replies,
		},
	}
}

// ResolveAuthor returns the author of the target, or ErrTargetNotFound when
// either the target type is unknown or the row does not exist.
func (r *TargetResolver) ResolveAuthor(targetType models.TargetType, targetID uint) (uint, error) {
	source, ok := r.sources[targetType]
	if !ok {
		return 0, fmt.Errorf("%w: unknown target type %q", ErrTargetNotFound, targetType)
	}
	authorID, err := source.GetAuthorID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrTargetNotFound
		}
		return 0, err
	}
	return authorID, nil
}
