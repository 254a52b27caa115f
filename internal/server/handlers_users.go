package server

import (
	"errors"
	"net/http"

	"riddle-rush/internal/auth"
	"riddle-rush/internal/db"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type scoreView struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Points       int    `json:"points"`
	ProfileImage string `json:"profileImage,omitempty"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, nil, "username and password are required") {
		return
	}
	user, err := s.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			s.log.WithError(err).Error("login lookup failed")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong username or password"})
		return
	}
	if !auth.Verify(req.Password, user.Hash, user.Salt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong username or password"})
		return
	}
	s.sessions.SignIn(c, user.ID)
	s.log.WithUserID(user.ID).Info("user logged in")
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) handleLogout(c *gin.Context) {
	s.sessions.SignOut(c)
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) handleTopScores(c *gin.Context) {
	users, err := s.store.TopScores(c.Request.Context(), s.cfg.TopScoresLimit)
	if err != nil {
		s.log.WithError(err).Error("top scores failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, try again"})
		return
	}
	scores := make([]scoreView, 0, len(users))
	for _, user := range users {
		scores = append(scores, scoreView{
			ID:           user.ID,
			Username:     user.Username,
			Points:       user.Points,
			ProfileImage: user.ProfileImage,
		})
	}
	c.JSON(http.StatusOK, scores)
}
