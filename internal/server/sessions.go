package server

import (
	"net/http"
	"sync"
	"time"

	"riddle-rush/internal/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const sessionCookieName = "rr_session"

// sessionStore maps a session cookie to the logged-in user. Sessions live in
// the database when a connection is available and fall back to process
// memory otherwise.
type sessionStore struct {
	db  *gorm.DB
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]uint
}

func newSessionStore(conn *gorm.DB, ttl time.Duration) *sessionStore {
	return &sessionStore{
		db:       conn,
		ttl:      ttl,
		sessions: make(map[string]uint),
	}
}

func (s *sessionStore) SignIn(c *gin.Context, userID uint) {
	id := s.ensureSessionID(c)
	if s.db == nil {
		s.mu.Lock()
		s.sessions[id] = userID
		s.mu.Unlock()
		return
	}
	record := db.Session{
		ID:     id,
		UserID: userID,
	}
	_ = s.db.Save(&record).Error
}

func (s *sessionStore) SignOut(c *gin.Context) {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie == "" {
		return
	}
	if s.db == nil {
		s.mu.Lock()
		delete(s.sessions, cookie)
		s.mu.Unlock()
	} else {
		_ = s.db.Delete(&db.Session{}, "id = ?", cookie).Error
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID resolves the viewer behind the request; 0 means anonymous.
func (s *sessionStore) UserID(c *gin.Context) uint {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie == "" {
		return 0
	}
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.sessions[cookie]
	}
	var record db.Session
	if err := s.db.Where("id = ?", cookie).First(&record).Error; err != nil {
		return 0
	}
	if s.ttl > 0 && time.Since(record.UpdatedAt) > s.ttl {
		_ = s.db.Delete(&record).Error
		return 0
	}
	return record.UserID
}

func (s *sessionStore) ensureSessionID(c *gin.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err == nil && cookie != "" {
		return cookie
	}
	id := uuid.NewString()
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
