package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups the handlers served by the API.
type Handlers struct {
	Location *LocationHandler
	Saved    *SavedLocationHandler
	Search   *SearchSessionHandler
	Map      *MapSessionHandler
	// SearchLimiter throttles search text changes, each of which queries the places provider. Optional.
	SearchLimiter *IPRateLimiter
}

// NewRouter registers every route on a new gin engine.
func NewRouter(h Handlers, log zerolog.Logger) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	locations := r.Group("/locations")
	locations.GET("", h.Location.Overview)
	locations.POST("/select", h.Location.Select)
	locations.GET("/current", h.Location.Current)
	locations.PUT("/current", h.Location.UpdateCurrent)
	locations.DELETE("/current", h.Location.ClearCurrent)
	locations.GET("/current/stream", h.Location.StreamCurrent)
	locations.GET("/saved", h.Saved.List)
	locations.POST("/saved", h.Saved.Save)
	locations.GET("/saved/:id", h.Saved.Get)
	locations.PATCH("/saved/:id", h.Saved.Rename)
	locations.DELETE("/saved/:id", h.Saved.Delete)

	searchText := []gin.HandlerFunc{h.Search.UpdateText}
	if h.SearchLimiter != nil {
		searchText = append([]gin.HandlerFunc{h.SearchLimiter.RateLimit()}, searchText...)
	}
	search := r.Group("/search-sessions")
	search.POST("", h.Search.Create)
	search.GET("/:id", h.Search.Get)
	search.DELETE("/:id", h.Search.Delete)
	search.PUT("/:id/text", searchText...)
	search.POST("/:id/save", h.Search.Save)
	search.GET("/:id/results/stream", h.Search.StreamResults)

	maps := r.Group("/map-sessions")
	maps.POST("", h.Map.Create)
	maps.GET("/:id", h.Map.Get)
	maps.DELETE("/:id", h.Map.Delete)
	maps.PUT("/:id/input", h.Map.UpdateInput)
	maps.POST("/:id/click", h.Map.Click)
	maps.POST("/:id/save", h.Map.Save)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
