package models

import "gorm.io/gorm"

// Post is a forum post under a primary/secondary section
type Post struct {
	gorm.Model
	AuthorID           uint     `json:"author_id" gorm:"index"`
	SectionPrimaryID   uint     `json:"section_primary_id" gorm:"index"`
	SectionSecondaryID uint     `json:"section_secondary_id" gorm:"index"`
	Title              string   `json:"title" gorm:"size:200"`
	Content            string   `json:"content" gorm:"type:text"`
	Images             []Image  `json:"images,omitempty" gorm:"polymorphic:Owner;polymorphicValue:post"`
}

// Image is an uploaded object-storage image attached to a content row
type Image struct {
	gorm.Model
	OwnerID   uint   `json:"owner_id" gorm:"index:idx_image_owner"`
	OwnerType string `json:"owner_type" gorm:"size:20;index:idx_image_owner"`
	URL       string `json:"url" gorm:"size:500"`
}

type CreatePostRequest struct {
	SectionPrimaryID   uint     `json:"section_primary_id" validate:"required"`
	SectionSecondaryID uint     `json:"section_secondary_id,omitempty" validate:"omitempty"`
	Title              string   `json:"title" validate:"required,min=1,max=200"`
	Content            string   `json:"content" validate:"required,min=1,max=10000"`
	ImageURLs          []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}

type UpdatePostRequest struct {
	Title     string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content   string   `json:"content,omitempty" validate:"omitempty,min=1,max=10000"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}
