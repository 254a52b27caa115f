package db

import "time"

// User points are monotonically non-decreasing; only a winning answer
// increments them. Hash and Salt hold scrypt credential material.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:64;uniqueIndex;not null"`
	Points       int       `gorm:"not null;default:0"`
	ProfileImage string    `gorm:"size:64"`
	Hash         []byte    `gorm:"type:bytea"`
	Salt         []byte    `gorm:"type:bytea"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}
