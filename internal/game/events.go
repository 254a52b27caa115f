package game

import (
	"context"
	"encoding/json"

	"riddle-rush/internal/db"
)

// Lifecycle event types recorded in the audit log.
const (
	EventRiddleCreated   = "riddle_created"
	EventAnswerSubmitted = "answer_submitted"
	EventRiddleSolved    = "riddle_solved"
)

// RecordEvent appends an audit event. A zero riddleID or userID is stored as
// null.
func RecordEvent(ctx context.Context, store Store, riddleID, userID uint, eventType string, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := &db.Event{
		Type:    eventType,
		Payload: raw,
	}
	if riddleID != 0 {
		event.RiddleID = &riddleID
	}
	if userID != 0 {
		event.UserID = &userID
	}
	return store.AppendEvent(ctx, event)
}
