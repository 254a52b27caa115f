package game

import (
	"fmt"
	"strings"

	"riddle-rush/internal/db"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// similarityThreshold tolerates minor typos while rejecting unrelated text.
const similarityThreshold = 0.75

// Score reports whether a candidate answer matches the hidden answer. Both
// sides are lower-cased and compared with the Sorensen-Dice bigram metric.
func Score(candidate, hidden string) bool {
	similarity := strutil.Similarity(
		strings.ToLower(candidate),
		strings.ToLower(hidden),
		metrics.NewSorensenDice(),
	)
	return similarity >= similarityThreshold
}

// PointsFor maps difficulty to the points a winning answer is worth.
// Difficulty is validated on riddle creation, so an unknown value here is a
// programming error.
func PointsFor(difficulty string) int {
	switch difficulty {
	case db.DifficultyEasy:
		return 1
	case db.DifficultyAverage:
		return 2
	case db.DifficultyHard:
		return 3
	}
	panic(fmt.Sprintf("unknown difficulty %q", difficulty))
}
