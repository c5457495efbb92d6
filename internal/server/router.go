package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) newRouter() *gin.Engine {
	if s.deps.Mode != "" {
		gin.SetMode(s.deps.Mode)
	}

	router := gin.New()
	router.Use(RequestID(), AccessLog(s.logger), gin.Recovery())

	config := cors.DefaultConfig()
	if len(s.deps.AllowedOrigins) == 0 || (len(s.deps.AllowedOrigins) == 1 && s.deps.AllowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = s.deps.AllowedOrigins
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	router.Use(cors.New(config))

	router.GET("/healthz", s.Health)

	api := router.Group("/api")
	{
		api.GET("/locations/:zip", s.GetLocation)
		api.GET("/profiles/:username/completion", s.GetProfileCompletion)
		api.POST("/profiles/completion", s.ScoreProfile)
		api.GET("/encouragement", s.GetEncouragement)
	}

	return router
}
