// Package testserver is an in-process stand-in for the moneydash backend.
//
// It implements just enough of the REST surface for the client test suites
// and for developing against a local stub: JWT auth with refresh, in-memory
// collections, derived budget fields and the dashboard payload.
package testserver

import (
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/moneydash/moneydash/internal/models"
)

// Credentials of the seeded account.
const (
	UserEmail    = "demo@moneydash.io"
	UserPassword = "Demo#1234"
)

// Server holds the in-memory state behind the stub API.
type Server struct {
	engine *gin.Engine

	mu           sync.Mutex
	secret       []byte
	user         models.User
	tokenSerial  int
	refreshToken string
	rotate       bool
	refreshCalls int
	refreshDelay time.Duration

	nextID     int64
	income     []models.Transaction
	expenses   []models.Transaction
	categories []models.Category
	budgets    []models.Budget
	goals      []models.SavingsGoal
	posts      []models.Post
}

// New returns a stub server with one seeded user and empty collections.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		secret:       []byte(uuid.NewString()),
		user:         models.User{ID: 1, FullName: "Demo User", Email: UserEmail},
		refreshToken: uuid.NewString(),
		nextID:       100,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.DebugLevel),
		logger.WithLogger(func(c *gin.Context, _ io.Writer, latency time.Duration) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Dur("latency", latency).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Logger()
		})))

	// The stub can be pointed at from a browser during development.
	if allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS"); ok {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	s.routes(r)
	s.engine = r

	return s
}

// Handler returns the HTTP handler, for use with httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// RefreshCalls returns how many refresh-token exchanges the server has seen.
func (s *Server) RefreshCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCalls
}

// SetRefreshDelay makes the refresh endpoint take at least d. Tests use this
// to widen the window in which concurrent 401 handlers can pile up.
func (s *Server) SetRefreshDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshDelay = d
}

// SetRotateRefreshTokens makes the refresh endpoint hand out a new refresh
// token on every exchange.
func (s *Server) SetRotateRefreshTokens(rotate bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotate = rotate
}

// InvalidateAccessTokens makes every previously issued access token fail
// with 401 while keeping the refresh token valid.
func (s *Server) InvalidateAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenSerial++
}

// RevokeRefreshToken makes the refresh exchange fail, simulating a fully
// expired session.
func (s *Server) RevokeRefreshToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshToken = ""
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/login", s.login)
	r.POST("/register", s.register)
	r.POST("/refresh-token", s.refresh)
	r.POST("/forgot-password", s.accepted)
	r.POST("/reset-password", s.accepted)

	authed := r.Group("/", s.requireAuth)
	{
		authed.GET("/profile", s.profile)
		authed.PUT("/update-profile-image", s.updateProfileImage)

		authed.GET("/categories", s.listCategories)
		authed.POST("/categories", s.createCategory)
		authed.PUT("/categories/:id", s.updateCategory)
		authed.DELETE("/categories/:id", s.deleteCategory)

		authed.GET("/income", s.listIncome)
		authed.POST("/income", s.addIncome)
		authed.PUT("/income/:id", s.updateIncome)
		authed.DELETE("/income/:id", s.deleteIncome)

		authed.GET("/expenses", s.listExpenses)
		authed.POST("/expenses", s.addExpense)
		authed.PUT("/expenses/:id", s.updateExpense)
		authed.DELETE("/expenses/:id", s.deleteExpense)

		authed.GET("/budget", s.listBudgets)
		authed.POST("/budget", s.saveBudget)

		authed.GET("/goals", s.listGoals)
		authed.POST("/goals", s.saveGoal)
		authed.DELETE("/goals/:id", s.deleteGoal)

		authed.GET("/dashboard", s.dashboard)
		authed.POST("/filter", s.filter)

		authed.GET("/excel/download/income", s.downloadExcel)
		authed.GET("/excel/download/expense", s.downloadExcel)
		authed.GET("/email/income-excel", s.accepted)
		authed.GET("/email/expense-excel", s.accepted)

		authed.GET("/posts", s.listPosts)
		authed.POST("/posts", s.createPost)
		authed.POST("/posts/:id/comments", s.addComment)
		authed.POST("/posts/:id/like", s.likePost)

		// Admin surface exists but the seeded user has no admin role.
		authed.GET("/admin/backup", func(c *gin.Context) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		})
	}
}

func (s *Server) accepted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
