package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomeworks/verba/internal/api/handlers"
	"github.com/tomeworks/verba/internal/logging"
	"github.com/tomeworks/verba/internal/validation"
)

func newRouter(log logging.Logger, svc handlers.Service, validator *validation.Validator) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	setupRoutes(router, log, svc, validator)

	return router
}

func setupRoutes(router *gin.Engine, log logging.Logger, svc handlers.Service, validator *validation.Validator) {
	router.GET("/health", health())

	handlers.SetupDocuments(router, log, svc, validator)
	handlers.SetupRankings(router, log, svc, validator)
}

func health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
}
