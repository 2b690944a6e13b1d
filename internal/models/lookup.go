package models

// Cancer is a lookup entry for the cancer type a user or diary is tagged with
type Cancer struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;uniqueIndex"`
}

// Emotion is a lookup entry for the mood attached to a diary
type Emotion struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:30;uniqueIndex"`
	Emoji string `json:"emoji" gorm:"size:10"`
}

// SectionPrimary is a top-level forum section
type SectionPrimary struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;uniqueIndex"`
}

// SectionSecondary is a forum subsection under a primary section
type SectionSecondary struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	SectionPrimaryID uint   `json:"section_primary_id" gorm:"index"`
	Name             string `json:"name" gorm:"size:50"`
}
