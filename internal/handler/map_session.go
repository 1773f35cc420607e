package handler

import (
	"context"
	"net/http"

	"weather-location-api/internal/models"
	"weather-location-api/internal/session"
	"weather-location-api/internal/viewmodel"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MapScreen is the view model behind one map session
type MapScreen interface {
	State() viewmodel.MapState
	OnUserInputChange(alias string)
	OnMapClick(c models.Coordinates) error
	SaveLocation(ctx context.Context) (*models.Location, error)
	Close()
}

// MapSessionHandler handles map sessions
type MapSessionHandler struct {
	sessions  *session.Registry[MapScreen]
	newScreen func() (MapScreen, error)
	log       zerolog.Logger
}

// NewMapSessionHandler creates a new map session handler
func NewMapSessionHandler(sessions *session.Registry[MapScreen], newScreen func() (MapScreen, error), log zerolog.Logger) *MapSessionHandler {
	return &MapSessionHandler{
		sessions:  sessions,
		newScreen: newScreen,
		log:       log.With().Str("component", "map_session_handler").Logger(),
	}
}

type mapSessionResponse struct {
	ID string `json:"id"`
	viewmodel.MapState
}

type userInputRequest struct {
	Alias string `json:"alias"`
}

type mapClickRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,latitude"`
	Longitude *float64 `json:"longitude" binding:"required,longitude"`
}

// Create handles POST /map-sessions requests
//
//	@Summary	Open a map session
//	@Tags		map
//	@Produce	json
//	@Success	201	{object}	mapSessionResponse
//	@Router		/map-sessions [post]
func (h *MapSessionHandler) Create(c *gin.Context) {
	screen, err := h.newScreen()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	id := h.sessions.Create(screen)

	c.JSON(http.StatusCreated, mapSessionResponse{ID: id, MapState: screen.State()})
}

// Get handles GET /map-sessions/:id requests
//
//	@Summary	Map state
//	@Tags		map
//	@Produce	json
//	@Param		id	path	string	true	"Session id"
//	@Success	200	{object}	mapSessionResponse
//	@Router		/map-sessions/{id} [get]
func (h *MapSessionHandler) Get(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, mapSessionResponse{ID: c.Param("id"), MapState: screen.State()})
}

// Delete handles DELETE /map-sessions/:id requests
//
//	@Summary	Close a map session
//	@Tags		map
//	@Param		id	path	string	true	"Session id"
//	@Success	204
//	@Router		/map-sessions/{id} [delete]
func (h *MapSessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateInput handles PUT /map-sessions/:id/input requests
//
//	@Summary	Change the alias typed for the selected point
//	@Tags		map
//	@Accept		json
//	@Produce	json
//	@Param		id	path	string	true	"Session id"
//	@Success	200	{object}	mapSessionResponse
//	@Router		/map-sessions/{id}/input [put]
func (h *MapSessionHandler) UpdateInput(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}

	var req userInputRequest
	if !bindJSON(c, &req) {
		return
	}

	screen.OnUserInputChange(req.Alias)
	c.JSON(http.StatusOK, mapSessionResponse{ID: c.Param("id"), MapState: screen.State()})
}

// Click handles POST /map-sessions/:id/click requests
//
//	@Summary	Select a point on the map
//	@Tags		map
//	@Accept		json
//	@Produce	json
//	@Param		id	path	string	true	"Session id"
//	@Success	200	{object}	mapSessionResponse
//	@Router		/map-sessions/{id}/click [post]
func (h *MapSessionHandler) Click(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}

	var req mapClickRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := screen.OnMapClick(models.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, mapSessionResponse{ID: c.Param("id"), MapState: screen.State()})
}

// Save handles POST /map-sessions/:id/save requests
//
//	@Summary	Save the selected point
//	@Tags		map
//	@Produce	json
//	@Param		id	path	string	true	"Session id"
//	@Success	201	{object}	models.Location
//	@Router		/map-sessions/{id}/save [post]
func (h *MapSessionHandler) Save(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}

	location, err := screen.SaveLocation(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, location)
}

func (h *MapSessionHandler) screen(c *gin.Context) (MapScreen, bool) {
	screen, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return nil, false
	}
	return screen, true
}
