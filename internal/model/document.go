package model

import "time"

// Page is the extracted text of one physical PDF page. Number is 1-based.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// Document is an uploaded PDF and its searchable page text. All pages are
// stored together as one JSON column and written in a single insert.
type Document struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	StorageName     string    `gorm:"size:64;not null;uniqueIndex" json:"name"`
	StorageLocation string    `gorm:"size:512;not null" json:"-"`
	OriginalName    string    `gorm:"size:255;not null" json:"original_name"`
	PageCount       int       `gorm:"not null" json:"page_count"`
	Pages           []Page    `gorm:"serializer:json" json:"-"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}
