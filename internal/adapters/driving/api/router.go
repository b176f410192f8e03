package api

import (
	"github.com/gin-gonic/gin"
)

// RouterConfig configures the middleware stack.
type RouterConfig struct {
	FrontendOrigin string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires gin routes and middleware.
func NewRouter(cfg RouterConfig, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(CORS(cfg.FrontendOrigin))
	r.Use(NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Handler())

	r.GET("/healthz", h.Healthz)

	integrations := r.Group("/integrations/:provider")
	{
		integrations.GET("/authorize", h.Authorize)
		integrations.GET("/oauth2callback", h.Callback)
		integrations.GET("/credentials", h.Credentials)
		integrations.GET("/items", h.Items)
	}

	return r
}
