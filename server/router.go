package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/server/middlewares"
	"golang.org/x/time/rate"
)

const (
	requestsPerSecond = 20
	requestBurst      = 40
)

// NewRouter wires the search routes. The viewer-identity middleware guards
// only the endpoints that compute on behalf of a user; global search,
// trending and the index upsert are viewer-agnostic.
func NewRouter(h *Handler) *gin.Engine {
	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(middlewares.RateLimit(rate.Limit(requestsPerSecond), requestBurst))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	searchRoutes := router.Group("/search")
	{
		searchRoutes.GET("/global", h.GlobalSearch)
		searchRoutes.GET("/hashtags/trending", h.TrendingHashtags)
		searchRoutes.POST("/index", h.UpsertIndex)

		authed := searchRoutes.Group("")
		authed.Use(middlewares.Viewer())
		authed.GET("/users", h.SearchUsers)
		authed.GET("/users/recommended", h.RecommendedUsers)
	}

	return router
}
