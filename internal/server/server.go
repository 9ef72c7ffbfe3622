// Package server exposes the expense tracker over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gitlab.com/yelinaung/expense-api/internal/auth"
	"gitlab.com/yelinaung/expense-api/internal/database"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

// Deps are the collaborators the HTTP layer needs. Suggester and DB may be
// nil: suggestions then answer 503 and the health check skips the ping.
type Deps struct {
	Users     UserStore
	Expenses  ExpenseStore
	Budgets   BudgetStore
	Suggester CategorySuggester
	Tokens    *auth.TokenIssuer
	DB        database.Pinger
}

// Options tune the HTTP layer.
type Options struct {
	// AllowOrigin decides whether a browser origin may call the API.
	// Nil disables CORS headers.
	AllowOrigin func(origin string) bool
	// ServiceName names the server span.
	ServiceName string
}

// Server routes API requests to handlers.
type Server struct {
	deps    Deps
	opts    Options
	metrics *metrics
	engine  *gin.Engine
}

// New builds the router.
func New(deps Deps, opts Options) *Server {
	if opts.AllowOrigin == nil {
		opts.AllowOrigin = func(string) bool { return false }
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "expense-api"
	}

	s := &Server{
		deps:    deps,
		opts:    opts,
		metrics: newMetrics(),
		engine:  gin.New(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.engine
	r.Use(gin.Recovery(), requestLogger(), cors(s.opts.AllowOrigin))

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)
	api.GET("/categories", s.handleCategories)

	authed := api.Group("", requireAuth(s.deps.Tokens))
	authed.GET("/auth/me", s.handleMe)

	authed.POST("/expenses", s.handleCreateExpense)
	authed.GET("/expenses", s.handleListExpenses)
	authed.GET("/expenses/export/csv", s.handleExportCSV)
	authed.GET("/expenses/export/xlsx", s.handleExportXLSX)
	authed.POST("/expenses/suggest-category", s.handleSuggestCategory)
	authed.GET("/expenses/:id", s.handleGetExpense)
	authed.PUT("/expenses/:id", s.handleUpdateExpense)
	authed.DELETE("/expenses/:id", s.handleDeleteExpense)

	authed.GET("/analytics/summary", s.handleSummary)

	authed.POST("/budget", s.handleUpsertBudget)
	authed.GET("/budget", s.handleListBudgets)

	r.NoRoute(func(c *gin.Context) {
		abortWithDetail(c, http.StatusNotFound, "Not found")
	})
}

// Handler returns the instrumented HTTP handler.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.engine, s.opts.ServiceName)
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.deps.DB != nil {
		if err := s.deps.DB.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Categories())
}
