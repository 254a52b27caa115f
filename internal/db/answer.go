package db

import "time"

// Answer is an append-only submission record. Rows are never edited or
// deleted; ordering is insertion order with CreatedAt as tiebreaker.
type Answer struct {
	ID        uint      `gorm:"primaryKey"`
	RiddleID  uint      `gorm:"index;not null"`
	UserID    uint      `gorm:"index;not null"`
	Text      string    `gorm:"size:280;not null"`
	IsWinning bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
	User      User
}
