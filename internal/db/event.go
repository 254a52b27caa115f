package db

import (
	"time"

	"gorm.io/datatypes"
)

// Event is an append-only audit record of riddle lifecycle moments.
type Event struct {
	ID        uint           `gorm:"primaryKey"`
	RiddleID  *uint          `gorm:"index"`
	UserID    *uint          `gorm:"index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
