package game

import (
	"testing"
	"time"

	"riddle-rush/internal/db"
)

const (
	ownerID  = 1
	solverID = 2
)

var baseTime = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func contestedRiddle(durationSeconds int) *db.Riddle {
	return &db.Riddle{
		ID:              1,
		Question:        "What is the capital of France?",
		Response:        "paris",
		Difficulty:      db.DifficultyAverage,
		DurationSeconds: durationSeconds,
		FirstHint:       "It is in Europe",
		SecondHint:      "City of lights",
		OwnerID:         ownerID,
		Owner:           db.User{ID: ownerID, Username: "Mark"},
	}
}

func startedAt(riddle *db.Riddle, start time.Time) *db.Riddle {
	millis := start.UnixMilli()
	riddle.StartTime = &millis
	return riddle
}

func TestProjectOwnerSeesEverything(t *testing.T) {
	riddle := contestedRiddle(60)

	view := Project(riddle, nil, ownerID, baseTime)
	if !view.Yours {
		t.Fatal("expected owner view to be marked yours")
	}
	if view.Response != "paris" || view.FirstHint == "" || view.SecondHint == "" {
		t.Fatalf("expected full disclosure for owner, got %+v", view)
	}
	if view.Status != "OPEN" {
		t.Fatalf("expected status OPEN, got %q", view.Status)
	}

	// Still everything visible mid-game.
	startedAt(riddle, baseTime)
	view = Project(riddle, nil, ownerID, baseTime.Add(5*time.Second))
	if view.Response != "paris" || view.FirstHint == "" || view.SecondHint == "" {
		t.Fatalf("expected full disclosure for owner mid-game, got %+v", view)
	}
}

func TestProjectOpenHidesHintsAndAnswer(t *testing.T) {
	view := Project(contestedRiddle(60), nil, solverID, baseTime)
	if view.Yours {
		t.Fatal("expected non-owner view")
	}
	if view.Response != "" || view.FirstHint != "" || view.SecondHint != "" {
		t.Fatalf("expected hidden fields, got %+v", view)
	}
	if view.Status != "OPEN" {
		t.Fatalf("expected status OPEN, got %q", view.Status)
	}
	if view.ElapsedSeconds != nil || view.RemainingSeconds != nil {
		t.Fatal("expected no timing fields before the clock starts")
	}
}

func TestProjectFirstHintUnlocksAtHalfDuration(t *testing.T) {
	riddle := startedAt(contestedRiddle(100), baseTime)

	// One second before the boundary: still hidden, countdown shows 1s.
	view := Project(riddle, nil, solverID, baseTime.Add(49*time.Second))
	if view.FirstHint != "" {
		t.Fatalf("expected first hint hidden at remaining=51, got %q", view.FirstHint)
	}
	if view.FirstHintIn == nil || *view.FirstHintIn != 1 {
		t.Fatalf("expected first hint unlock countdown of 1, got %v", view.FirstHintIn)
	}

	// At exactly half the duration the hint is revealed.
	view = Project(riddle, nil, solverID, baseTime.Add(50*time.Second))
	if view.FirstHint == "" {
		t.Fatal("expected first hint visible at remaining=50")
	}
	if view.SecondHint != "" {
		t.Fatalf("expected second hint still hidden at remaining=50, got %q", view.SecondHint)
	}
	if view.SecondHintIn == nil || *view.SecondHintIn != 25 {
		t.Fatalf("expected second hint unlock countdown of 25, got %v", view.SecondHintIn)
	}
	if view.Response != "" {
		t.Fatal("hidden answer must stay withheld while contested")
	}
}

func TestProjectSecondHintUnlocksAtQuarterDuration(t *testing.T) {
	riddle := startedAt(contestedRiddle(100), baseTime)

	view := Project(riddle, nil, solverID, baseTime.Add(74*time.Second))
	if view.SecondHint != "" {
		t.Fatalf("expected second hint hidden at remaining=26, got %q", view.SecondHint)
	}

	view = Project(riddle, nil, solverID, baseTime.Add(75*time.Second))
	if view.SecondHint == "" {
		t.Fatal("expected second hint visible at remaining=25")
	}
	if view.Response != "" {
		t.Fatal("hidden answer must stay withheld while contested")
	}
}

func TestProjectClosedRevealsEverything(t *testing.T) {
	riddle := startedAt(contestedRiddle(60), baseTime)

	view := Project(riddle, nil, solverID, baseTime.Add(61*time.Second))
	if !view.Closed {
		t.Fatal("expected riddle to be closed")
	}
	if view.Status != "CLOSED" {
		t.Fatalf("expected status CLOSED, got %q", view.Status)
	}
	if view.Response != "paris" || view.FirstHint == "" || view.SecondHint == "" {
		t.Fatalf("expected full disclosure once closed, got %+v", view)
	}
}

func TestProjectDeadlineBoundaryStaysRunning(t *testing.T) {
	riddle := startedAt(contestedRiddle(60), baseTime)

	// start + duration exactly: not yet closed.
	view := Project(riddle, nil, solverID, baseTime.Add(60*time.Second))
	if view.Closed {
		t.Fatal("riddle must not close until the deadline has passed")
	}
	if view.Status != "0m 00s" {
		t.Fatalf("expected zero countdown, got %q", view.Status)
	}
}

func TestProjectSolvedTakesPrecedenceOverDeadline(t *testing.T) {
	riddle := startedAt(contestedRiddle(60), baseTime)
	riddle.SolutionFound = true

	// Both solved and expired.
	view := Project(riddle, nil, solverID, baseTime.Add(2*time.Minute))
	if view.Status != "CLOSED" {
		t.Fatalf("expected status CLOSED, got %q", view.Status)
	}
	if view.Response != "paris" {
		t.Fatal("expected answer revealed for solved riddle")
	}

	// Solved with time remaining reads the same way.
	view = Project(riddle, nil, solverID, baseTime.Add(time.Second))
	if view.Status != "CLOSED" || view.Response != "paris" {
		t.Fatalf("expected solved riddle to read CLOSED, got %+v", view)
	}
}

func TestProjectStatusCountdownFormat(t *testing.T) {
	riddle := startedAt(contestedRiddle(600), baseTime)

	view := Project(riddle, nil, solverID, baseTime.Add(415*time.Second))
	if view.Status != "3m 05s" {
		t.Fatalf("expected countdown '3m 05s', got %q", view.Status)
	}
}

func TestProjectAnsweredFlag(t *testing.T) {
	riddle := startedAt(contestedRiddle(60), baseTime)
	answers := []db.Answer{
		{RiddleID: 1, UserID: solverID, Text: "london", User: db.User{ID: solverID, Username: "Paul"}},
	}

	view := Project(riddle, answers, solverID, baseTime.Add(time.Second))
	if !view.Answered {
		t.Fatal("expected answered flag for viewer with an answer")
	}
	view = Project(riddle, answers, 3, baseTime.Add(time.Second))
	if view.Answered {
		t.Fatal("expected answered flag unset for other viewers")
	}
	if len(view.Answers) != 1 || view.Answers[0].Username != "Paul" {
		t.Fatalf("expected answer list with usernames, got %+v", view.Answers)
	}
}

func TestProjectAnonymousViewer(t *testing.T) {
	view := Project(contestedRiddle(60), nil, 0, baseTime)
	if view.Yours {
		t.Fatal("anonymous viewer can never own a riddle")
	}
	if view.Response != "" || view.FirstHint != "" {
		t.Fatalf("expected hidden fields for anonymous viewer, got %+v", view)
	}
}
