package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.serialize, s.handleHealth)
	s.router.GET("/health/live", s.handleLiveness)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1", s.serialize)
	{
		v1.GET("/factory", s.handleGetFactory)

		pairs := v1.Group("/pairs")
		{
			pairs.GET("", s.handleGetPairs)
			pairs.GET("/:tokenA/:tokenB", s.handleGetPair)
		}

		v1.GET("/lp/:pair/:owner", s.handleGetLPBalance)
		v1.GET("/quote", s.handleGetQuote)
		v1.POST("/amounts-out", s.handleAmountsOut)
		v1.POST("/amounts-in", s.handleAmountsIn)
	}
}

// serialize runs chain reads one at a time; the chain context is not safe
// for concurrent use.
func (s *Server) serialize(c *gin.Context) {
	ctx, span := s.telemetry.StartSpan(c.Request.Context(), "chain.read")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	c.Next()
}
