package game

import (
	"fmt"
	"math"
	"time"

	"riddle-rush/internal/db"
)

// View is the viewer-specific projection of a riddle. It is built fresh on
// every read; the stored riddle is never mutated, so a redacted copy can
// never leak back into the store.
type View struct {
	ID               uint         `json:"id"`
	Question         string       `json:"question"`
	Difficulty       string       `json:"difficulty"`
	Duration         int          `json:"duration"`
	Owner            string       `json:"owner"`
	OwnerID          uint         `json:"ownerId"`
	Yours            bool         `json:"yours"`
	Closed           bool         `json:"closed"`
	SolutionFound    bool         `json:"solutionFound"`
	Answered         bool         `json:"answered"`
	Status           string       `json:"status"`
	StartTime        *int64       `json:"startTime"`
	ElapsedSeconds   *int         `json:"elapsedSeconds,omitempty"`
	RemainingSeconds *int         `json:"remainingSeconds,omitempty"`
	Response         string       `json:"response,omitempty"`
	FirstHint        string       `json:"firstHint,omitempty"`
	SecondHint       string       `json:"secondHint,omitempty"`
	FirstHintIn      *int         `json:"firstHintIn,omitempty"`
	SecondHintIn     *int         `json:"secondHintIn,omitempty"`
	Answers          []AnswerView `json:"answers,omitempty"`
}

type AnswerView struct {
	Username     string    `json:"username"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Text         string    `json:"text"`
	IsWinning    bool      `json:"isWinning"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Project computes what viewerID may see of a riddle at the given instant.
// It is the single source of truth for disclosure: every read path goes
// through it, so no endpoint can leak a hint or the hidden answer early.
//
// A viewerID of 0 is an anonymous viewer. Rules, in precedence order:
//   - solved riddles, closed riddles and the owner's own riddles are fully
//     revealed, hints and hidden answer included;
//   - before the timer starts both hints are withheld;
//   - once started, the first hint unlocks when remaining time drops to half
//     the duration, the second at a quarter; until then the view carries a
//     countdown to each unlock, and the hidden answer is always withheld.
func Project(riddle *db.Riddle, answers []db.Answer, viewerID uint, now time.Time) View {
	nowMillis := now.UnixMilli()
	view := View{
		ID:            riddle.ID,
		Question:      riddle.Question,
		Difficulty:    riddle.Difficulty,
		Duration:      riddle.DurationSeconds,
		Owner:         riddle.Owner.Username,
		OwnerID:       riddle.OwnerID,
		SolutionFound: riddle.SolutionFound,
		StartTime:     riddle.StartTime,
	}
	view.Yours = viewerID != 0 && riddle.OwnerID == viewerID
	view.Closed = riddle.StartTime != nil &&
		*riddle.StartTime+int64(riddle.DurationSeconds)*1000 < nowMillis
	for _, answer := range answers {
		if viewerID != 0 && answer.UserID == viewerID {
			view.Answered = true
			break
		}
	}

	duration := float64(riddle.DurationSeconds)
	var remaining int
	if riddle.StartTime != nil {
		elapsed := int(math.Round(float64(nowMillis-*riddle.StartTime) / 1000))
		remaining = riddle.DurationSeconds - elapsed
		view.ElapsedSeconds = &elapsed
		view.RemainingSeconds = &remaining
	}

	if riddle.SolutionFound || view.Yours || view.Closed {
		view.Response = riddle.Response
		view.FirstHint = riddle.FirstHint
		view.SecondHint = riddle.SecondHint
	} else if riddle.StartTime != nil {
		if float64(remaining) <= 0.5*duration {
			view.FirstHint = riddle.FirstHint
		} else {
			unlock := int(math.Ceil(float64(remaining) - 0.5*duration))
			view.FirstHintIn = &unlock
		}
		if float64(remaining) <= 0.25*duration {
			view.SecondHint = riddle.SecondHint
		} else {
			unlock := int(math.Ceil(float64(remaining) - 0.25*duration))
			view.SecondHintIn = &unlock
		}
	}

	switch {
	case riddle.SolutionFound || view.Closed:
		view.Status = "CLOSED"
	case riddle.StartTime == nil:
		view.Status = "OPEN"
	default:
		view.Status = formatCountdown(remaining)
	}

	for _, answer := range answers {
		view.Answers = append(view.Answers, AnswerView{
			Username:     answer.User.Username,
			ProfileImage: answer.User.ProfileImage,
			Text:         answer.Text,
			IsWinning:    answer.IsWinning,
			CreatedAt:    answer.CreatedAt,
		})
	}
	return view
}

func formatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dm %02ds", seconds/60, seconds%60)
}
