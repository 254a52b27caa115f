package server

import (
	"errors"
	"net/http"

	"riddle-rush/internal/db"
	"riddle-rush/internal/game"

	"github.com/gin-gonic/gin"
)

type createRiddleRequest struct {
	Question   string `json:"question" binding:"required"`
	Response   string `json:"response" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required,difficulty"`
	Duration   int    `json:"duration" binding:"required,min=30,max=600"`
	FirstHint  string `json:"firstHint" binding:"required"`
	SecondHint string `json:"secondHint" binding:"required"`
}

type riddleURI struct {
	RiddleID uint `uri:"riddleID" binding:"required,min=1"`
}

type submitAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

var createRiddleMessages = bindMessages{
	"Question":   {"required": "question is required"},
	"Response":   {"required": "response is required"},
	"Difficulty": {
		"required":   "difficulty is required",
		"difficulty": `difficulty must be "easy", "average" or "hard"`,
	},
	"Duration": {
		"required": "duration is required",
		"min":      "duration must be between 30 and 600 seconds",
		"max":      "duration must be between 30 and 600 seconds",
	},
	"FirstHint":  {"required": "firstHint is required"},
	"SecondHint": {"required": "secondHint is required"},
}

func (s *Server) handleCreateRiddle(c *gin.Context) {
	userID, ok := s.requireUser(c)
	if !ok {
		return
	}
	var req createRiddleRequest
	if !bindJSON(c, &req, createRiddleMessages, "invalid riddle") {
		return
	}
	question, err := validateQuestion(req.Question)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	response, err := validateResponse(req.Response)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	firstHint, err := validateHint("firstHint", req.FirstHint)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	secondHint, err := validateHint("secondHint", req.SecondHint)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	riddle := &db.Riddle{
		Question:        question,
		Response:        response,
		Difficulty:      req.Difficulty,
		DurationSeconds: req.Duration,
		FirstHint:       firstHint,
		SecondHint:      secondHint,
		OwnerID:         userID,
	}
	ctx := c.Request.Context()
	if err := s.store.CreateRiddle(ctx, riddle); err != nil {
		s.log.WithError(err).Error("create riddle failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, try again"})
		return
	}
	if err := game.RecordEvent(ctx, s.store, riddle.ID, userID, game.EventRiddleCreated, map[string]any{
		"difficulty": riddle.Difficulty,
		"duration":   riddle.DurationSeconds,
	}); err != nil {
		s.log.WithError(err).Warn("record riddle_created event failed")
	}
	s.log.WithRiddleID(riddle.ID).WithField("user_id", userID).Info("riddle created")
	c.JSON(http.StatusCreated, gin.H{"id": riddle.ID})
}

func (s *Server) handleListRiddles(c *gin.Context) {
	viewerID := s.sessions.UserID(c)
	riddles, err := s.store.ListRiddles(c.Request.Context())
	if err != nil {
		s.log.WithError(err).Error("list riddles failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "There was a problem loading the riddles, try again later"})
		return
	}
	now := s.clock()
	views := make([]game.View, 0, len(riddles))
	for i := range riddles {
		views = append(views, game.Project(&riddles[i], nil, viewerID, now))
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) handleMyRiddles(c *gin.Context) {
	userID, ok := s.requireUser(c)
	if !ok {
		return
	}
	riddles, err := s.store.ListRiddlesByOwner(c.Request.Context(), userID)
	if err != nil {
		s.log.WithError(err).Error("list own riddles failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "There was a problem loading the riddles, try again later"})
		return
	}
	now := s.clock()
	views := make([]game.View, 0, len(riddles))
	for i := range riddles {
		views = append(views, game.Project(&riddles[i], nil, userID, now))
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) handleGetRiddle(c *gin.Context) {
	var uri riddleURI
	if !bindURI(c, &uri) {
		return
	}
	viewerID := s.sessions.UserID(c)
	ctx := c.Request.Context()
	riddle, err := s.store.GetRiddle(ctx, uri.RiddleID)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Riddle with specified ID was not found"})
		return
	}
	if err != nil {
		s.log.WithError(err).Error("get riddle failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "There was a problem loading the riddle, try again later"})
		return
	}
	answers, err := s.store.ListAnswers(ctx, riddle.ID)
	if err != nil {
		s.log.WithError(err).Error("list answers failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "There was a problem loading the riddle, try again later"})
		return
	}
	c.JSON(http.StatusOK, game.Project(riddle, answers, viewerID, s.clock()))
}

func (s *Server) handleSubmitAnswer(c *gin.Context) {
	userID, ok := s.requireUser(c)
	if !ok {
		return
	}
	var uri riddleURI
	if !bindURI(c, &uri) {
		return
	}
	var req submitAnswerRequest
	if !bindJSON(c, &req, nil, "answer is required") {
		return
	}
	answer, err := validateAnswer(req.Answer)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	correct, err := game.SubmitAnswer(c.Request.Context(), s.store, s.clock, uri.RiddleID, userID, answer)
	var invalidOp *game.InvalidOperationError
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Riddle with specified ID was not found"})
		return
	case errors.As(err, &invalidOp):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidOp.Reason})
		return
	case err != nil:
		s.log.WithError(err).WithField("riddle_id", uri.RiddleID).Error("submit answer failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, try again"})
		return
	}
	if correct {
		s.log.WithRiddleID(uri.RiddleID).WithField("user_id", userID).Info("riddle solved")
	}
	c.JSON(http.StatusOK, correct)
}
