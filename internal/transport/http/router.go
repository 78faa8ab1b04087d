package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"quizzapp-service/internal/logging"
)

// RouterConfig gathers what NewRouter wires together.
type RouterConfig struct {
	Accounts  *AccountHandler
	Questions *QuestionHandler
	Feed      *FeedHandler
	Logger    zerolog.Logger
	// PublicDir is served for any GET that matches no route (login page, /images/...).
	PublicDir string
}

// NewRouter builds the gin engine with every route of the service.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.GinMiddleware(cfg.Logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login.html")
	})

	api := r.Group("/api")
	{
		api.POST("/login", cfg.Accounts.Login)
		api.POST("/register", cfg.Accounts.Register)
		api.GET("/profile/:userId", cfg.Accounts.GetProfile)
		api.PUT("/profile/:userId", cfg.Accounts.UpdateProfile)

		api.GET("/questions", cfg.Questions.List)
		api.GET("/questions/:id", cfg.Questions.Get)
		api.POST("/questions", cfg.Questions.Create)
		api.PUT("/questions/:id", cfg.Questions.Update)
		api.DELETE("/questions/:id", cfg.Questions.Delete)
	}

	if cfg.Feed != nil {
		r.GET("/ws/questions", gin.WrapF(cfg.Feed.ServeWS))
	}

	var files http.Handler
	if cfg.PublicDir != "" {
		files = http.FileServer(http.Dir(cfg.PublicDir))
	}
	r.NoRoute(func(c *gin.Context) {
		if files != nil && (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead) {
			files.ServeHTTP(c.Writer, c.Request)
			return
		}
		notFound(c, msgRouteNotFound)
	})
	return r
}
