package db

import "time"

// Riddle difficulty levels accepted on creation.
const (
	DifficultyEasy    = "easy"
	DifficultyAverage = "average"
	DifficultyHard    = "hard"
)

// Riddle is a posted riddle. StartTime is unix milliseconds and stays nil
// until the first answer arrives; it is set exactly once. SolutionFound only
// ever flips false to true. "Closed" is never stored: it is derived from
// StartTime, DurationSeconds and the current time on every read.
type Riddle struct {
	ID              uint      `gorm:"primaryKey"`
	Question        string    `gorm:"size:1000;not null"`
	Response        string    `gorm:"size:280;not null"`
	Difficulty      string    `gorm:"size:16;not null"`
	DurationSeconds int       `gorm:"not null"`
	FirstHint       string    `gorm:"size:280;not null"`
	SecondHint      string    `gorm:"size:280;not null"`
	OwnerID         uint      `gorm:"index;not null"`
	StartTime       *int64    `gorm:""`
	SolutionFound   bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
	Owner           User      `gorm:"foreignKey:OwnerID"`
	Answers         []Answer
}
