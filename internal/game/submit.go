package game

import (
	"context"

	"riddle-rush/internal/db"
)

// SubmitAnswer runs the answer-submission transaction. Inside one atomic
// scope it re-reads the riddle with a row lock, validates the state machine
// preconditions in order, scores the answer, applies the conditional writes
// and appends the answer record. Any violation or storage failure rolls the
// whole unit back; nothing partially applied is ever observable.
//
// The riddle's clock starts on the first submitted answer, correct or not,
// and is never reset.
func SubmitAnswer(ctx context.Context, store Store, clock Clock, riddleID, userID uint, text string) (bool, error) {
	var correct bool
	err := store.Atomically(ctx, func(ctx context.Context) error {
		riddle, err := store.GetRiddleForUpdate(ctx, riddleID)
		if err != nil {
			return err
		}
		if riddle.OwnerID == userID {
			return invalidOperation("You cannot answer your own riddle")
		}
		if riddle.SolutionFound {
			return invalidOperation("Sorry, the riddle has already been solved")
		}
		now := clock().UnixMilli()
		if riddle.StartTime != nil && *riddle.StartTime+int64(riddle.DurationSeconds)*1000 < now {
			return invalidOperation("Sorry, the riddle closed")
		}

		correct = Score(text, riddle.Response)
		if correct {
			if err := store.SetSolutionFound(ctx, riddle.ID); err != nil {
				return err
			}
			if err := store.IncrementPoints(ctx, userID, PointsFor(riddle.Difficulty)); err != nil {
				return err
			}
		}
		if riddle.StartTime == nil {
			if err := store.SetStartTime(ctx, riddle.ID, now); err != nil {
				return err
			}
		}
		answer := &db.Answer{
			RiddleID:  riddle.ID,
			UserID:    userID,
			Text:      text,
			IsWinning: correct,
		}
		if err := store.AppendAnswer(ctx, answer); err != nil {
			return err
		}
		if err := RecordEvent(ctx, store, riddle.ID, userID, EventAnswerSubmitted, map[string]any{
			"correct": correct,
		}); err != nil {
			return err
		}
		if correct {
			return RecordEvent(ctx, store, riddle.ID, userID, EventRiddleSolved, map[string]any{
				"points": PointsFor(riddle.Difficulty),
			})
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return correct, nil
}
