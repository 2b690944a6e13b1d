package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint     `json:"id" gorm:"primaryKey"`
	Nickname    string   `json:"nickname"`
	Email       string   `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password    string   `json:"-"`                        // Store hashed password, ignore for JSON serialization
	FirebaseUID *string  `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Firebase UID for social login; NULL until linked so unlinked accounts never collide
	IsAdmin     bool     `json:"is_admin" gorm:"default:false"`             // Staff accounts that may manage editorial articles
	IsAnonymous bool     `json:"-" gorm:"default:false"`                    // Sentinel account that absorbs content of deleted users
	Cancers     []Cancer `json:"cancers,omitempty" gorm:"many2many:user_cancers;"`
}

// RefreshToken is an opaque, rotating token persisted per session
type RefreshToken struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"size:36;uniqueIndex"`
	UserID    uint      `json:"-" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"-"`
}

// SurveyAnswer stores a user's onboarding survey response
type SurveyAnswer struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"index"`
	QuestionNo int    `json:"question_no"`
	Answer     string `json:"answer" gorm:"size:255"`
}

type SignupRequest struct {
	Nickname string `json:"nickname" validate:"required,min=2,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	CancerID uint   `json:"cancer_id,omitempty" validate:"omitempty"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type UpdateUserRequest struct {
	Nickname string `json:"nickname,omitempty" validate:"omitempty,min=2,max=30"`
	CancerID uint   `json:"cancer_id,omitempty" validate:"omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
