package handler

import (
	"context"
	"net/http"

	"weather-location-api/internal/models"
	"weather-location-api/internal/viewmodel"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// LocationHandler handles the location modal and the current location
type LocationHandler struct {
	modal   LocationModal
	current CurrentLocationService
	log     zerolog.Logger
}

// LocationModal interface for dependency injection
type LocationModal interface {
	Overview(ctx context.Context) (*viewmodel.LocationOverview, error)
	SelectLocation(ctx context.Context, id string) (*models.Location, error)
}

// CurrentLocationService interface for dependency injection
type CurrentLocationService interface {
	CurrentLocation(ctx context.Context) (*models.Location, error)
	UpdateCurrentLocation(ctx context.Context, loc models.Location) (*models.Location, error)
	ClearCurrentLocation(ctx context.Context) error
	WatchCurrentLocation(ctx context.Context) (<-chan *models.Location, error)
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(modal LocationModal, current CurrentLocationService, log zerolog.Logger) *LocationHandler {
	return &LocationHandler{
		modal:   modal,
		current: current,
		log:     log.With().Str("component", "location_handler").Logger(),
	}
}

type selectLocationRequest struct {
	ID string `json:"id" binding:"required"`
}

type locationRequest struct {
	Alias     string   `json:"alias"`
	Address   string   `json:"address"`
	PlaceID   string   `json:"place_id"`
	Latitude  *float64 `json:"latitude" binding:"required,latitude"`
	Longitude *float64 `json:"longitude" binding:"required,longitude"`
}

func (r locationRequest) toModel() models.Location {
	return models.Location{
		Alias:     r.Alias,
		Address:   r.Address,
		PlaceID:   r.PlaceID,
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
	}
}

// Overview handles GET /locations requests
//
//	@Summary	Current and saved locations with the add-location menu
//	@Tags		locations
//	@Produce	json
//	@Success	200	{object}	viewmodel.LocationOverview
//	@Router		/locations [get]
func (h *LocationHandler) Overview(c *gin.Context) {
	overview, err := h.modal.Overview(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// Select handles POST /locations/select requests
//
//	@Summary	Make a saved location the current location
//	@Tags		locations
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	models.Location
//	@Router		/locations/select [post]
func (h *LocationHandler) Select(c *gin.Context) {
	var req selectLocationRequest
	if !bindJSON(c, &req) {
		return
	}

	location, err := h.modal.SelectLocation(c.Request.Context(), req.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// Current handles GET /locations/current requests
//
//	@Summary	Current location state
//	@Tags		locations
//	@Produce	json
//	@Success	200	{object}	models.LocationState
//	@Router		/locations/current [get]
func (h *LocationHandler) Current(c *gin.Context) {
	location, err := h.current.CurrentLocation(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, models.LocationStateOf(location))
}

// UpdateCurrent handles PUT /locations/current requests
//
//	@Summary	Replace the current location
//	@Tags		locations
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	models.Location
//	@Router		/locations/current [put]
func (h *LocationHandler) UpdateCurrent(c *gin.Context) {
	var req locationRequest
	if !bindJSON(c, &req) {
		return
	}

	location, err := h.current.UpdateCurrentLocation(c.Request.Context(), req.toModel())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// ClearCurrent handles DELETE /locations/current requests
//
//	@Summary	Forget the current location
//	@Tags		locations
//	@Success	204
//	@Router		/locations/current [delete]
func (h *LocationHandler) ClearCurrent(c *gin.Context) {
	if err := h.current.ClearCurrentLocation(c.Request.Context()); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// StreamCurrent handles GET /locations/current/stream requests.
// Every change of the current location is pushed as a "location" event.
//
//	@Summary	Stream the current location as server-sent events
//	@Tags		locations
//	@Produce	text/event-stream
//	@Router		/locations/current/stream [get]
func (h *LocationHandler) StreamCurrent(c *gin.Context) {
	ctx := c.Request.Context()
	stream, err := h.current.WatchCurrentLocation(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	streamEvents(c, "location", stream, models.LocationStateOf)
}

// streamEvents writes every value of stream as a server-sent event until the
// stream closes or the client goes away.
func streamEvents[T, R any](c *gin.Context, event string, stream <-chan T, render func(T) R) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	clientGone := c.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			return
		case value, ok := <-stream:
			if !ok {
				return
			}
			c.SSEvent(event, render(value))
			c.Writer.Flush()
		}
	}
}
