package models

// TargetType identifies which kind of content entity a reaction or
// notification points at.
type TargetType string

const (
	TargetDiary   TargetType = "diary"
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
	TargetReply   TargetType = "reply"
)

// Reaction is a catalog entry for a reaction kind users can apply to content
type Reaction struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:30;uniqueIndex"` // like, support, empathize
	Emoji string `json:"emoji" gorm:"size:10"`
}

// ReactionEntity is one user's reaction to one target object.
// entity_type/entity_id identify the container the reaction is displayed
// under; target_type/target_id identify the object actually reacted to.
type ReactionEntity struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	EntityType string     `json:"entity_type" gorm:"size:20;index:idx_reaction_entity"`
	EntityID   uint       `json:"entity_id" gorm:"index:idx_reaction_entity"`
	TargetType TargetType `json:"target_type" gorm:"size:20;index:idx_reaction_target"`
	TargetID   uint       `json:"target_id" gorm:"index:idx_reaction_target"`
	ReactionID uint       `json:"reaction_id"`
	UserID     uint       `json:"user_id" gorm:"index"`
}

type AddReactionRequest struct {
	EntityType string `json:"entity_type" validate:"required,oneof=diary post comment reply"`
	EntityID   uint   `json:"entity_id" validate:"required"`
	ReactionID uint   `json:"reaction_id" validate:"required"`
}

// ReactionCount is one catalog kind's count for a target
type ReactionCount struct {
	ReactionID uint  `json:"reactionId"`
	Count      int64 `json:"count"`
}

// TargetReactions is the normalized aggregation result for one target:
// one entry per catalog kind, in catalog order, plus the viewer's own kinds.
type TargetReactions struct {
	Reactions     []ReactionCount `json:"reactions"`
	UserReactions []uint          `json:"userReactions"`
}
