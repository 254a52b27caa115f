package server

import (
	"net/http"
	"time"

	"riddle-rush/internal/config"
	"riddle-rush/internal/db"
	"riddle-rush/internal/game"
	"riddle-rush/internal/logger"
	"riddle-rush/internal/metrics"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	store    game.Store
	conn     *gorm.DB
	cfg      config.Config
	clock    game.Clock
	sessions *sessionStore
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// New builds a server on the given connection. A nil connection runs
// everything in memory, which is how the tests run.
func New(conn *gorm.DB, cfg config.Config) *Server {
	var store game.Store
	if conn != nil {
		store = db.NewStore(conn)
	} else {
		store = game.NewMemStore()
	}
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	return &Server{
		store:    store,
		conn:     conn,
		cfg:      cfg,
		clock:    game.WallClock,
		sessions: newSessionStore(conn, ttl),
		log:      logger.NewLogger("riddle-rush"),
		metrics:  metrics.New("api"),
	}
}

func (s *Server) Router() *gin.Engine {
	registerValidators()
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.metrics.Middleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := router.Group("/api/v1")

	users := api.Group("/users")
	users.POST("/login", s.handleLogin)
	users.DELETE("/logout", s.handleLogout)
	users.GET("/top3", s.handleTopScores)

	riddles := api.Group("/riddles")
	riddles.POST("", s.handleCreateRiddle)
	riddles.GET("", s.handleListRiddles)
	riddles.GET("/mine", s.handleMyRiddles)
	riddles.GET("/:riddleID", s.handleGetRiddle)
	riddles.POST("/:riddleID/answers", s.handleSubmitAnswer)

	return router
}

// requireUser resolves the logged-in user or rejects the request.
func (s *Server) requireUser(c *gin.Context) (uint, bool) {
	userID := s.sessions.UserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return 0, false
	}
	return userID, true
}
