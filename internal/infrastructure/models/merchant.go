package models

import "time"

// Merchant is a merchant the signed-in user can act for.
type Merchant struct {
	MerchantCode string `gorm:"primaryKey;type:varchar(64)"`
	MerchantName string `gorm:"type:varchar(255);not null"`
	Selected     bool   `gorm:"not null;default:false"`
	Position     int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name
func (Merchant) TableName() string {
	return "merchants"
}

// Setting is a small key/value row for UI state that must survive restarts.
type Setting struct {
	Key       string `gorm:"primaryKey;type:varchar(100)"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName overrides the table name
func (Setting) TableName() string {
	return "settings"
}
