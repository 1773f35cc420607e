package handler

import (
	"context"
	"net/http"

	"weather-location-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SavedLocationHandler handles the saved locations list
type SavedLocationHandler struct {
	service SavedLocationService
	log     zerolog.Logger
}

// SavedLocationService interface for dependency injection
type SavedLocationService interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	GetLocation(ctx context.Context, id string) (*models.Location, error)
	SaveLocation(ctx context.Context, loc models.Location) (*models.Location, error)
	RenameLocation(ctx context.Context, id, alias string) (*models.Location, error)
	DeleteLocation(ctx context.Context, id string) error
}

// NewSavedLocationHandler creates a new saved location handler
func NewSavedLocationHandler(svc SavedLocationService, log zerolog.Logger) *SavedLocationHandler {
	return &SavedLocationHandler{
		service: svc,
		log:     log.With().Str("component", "saved_location_handler").Logger(),
	}
}

type renameRequest struct {
	Alias string `json:"alias" binding:"required"`
}

// List handles GET /locations/saved requests
//
//	@Summary	Saved locations
//	@Tags		saved
//	@Produce	json
//	@Success	200	{array}	models.Location
//	@Router		/locations/saved [get]
func (h *SavedLocationHandler) List(c *gin.Context) {
	locations, err := h.service.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, locations)
}

// Get handles GET /locations/saved/:id requests
//
//	@Summary	A saved location
//	@Tags		saved
//	@Produce	json
//	@Param		id	path	string	true	"Saved location id"
//	@Success	200	{object}	models.Location
//	@Router		/locations/saved/{id} [get]
func (h *SavedLocationHandler) Get(c *gin.Context) {
	location, err := h.service.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// Save handles POST /locations/saved requests
//
//	@Summary	Save a location
//	@Tags		saved
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	models.Location
//	@Router		/locations/saved [post]
func (h *SavedLocationHandler) Save(c *gin.Context) {
	var req locationRequest
	if !bindJSON(c, &req) {
		return
	}

	location, err := h.service.SaveLocation(c.Request.Context(), req.toModel())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, location)
}

// Rename handles PATCH /locations/saved/:id requests
//
//	@Summary	Rename a saved location
//	@Tags		saved
//	@Accept		json
//	@Produce	json
//	@Param		id	path	string	true	"Saved location id"
//	@Success	200	{object}	models.Location
//	@Router		/locations/saved/{id} [patch]
func (h *SavedLocationHandler) Rename(c *gin.Context) {
	var req renameRequest
	if !bindJSON(c, &req) {
		return
	}

	location, err := h.service.RenameLocation(c.Request.Context(), c.Param("id"), req.Alias)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// Delete handles DELETE /locations/saved/:id requests
//
//	@Summary	Delete a saved location
//	@Tags		saved
//	@Param		id	path	string	true	"Saved location id"
//	@Success	204
//	@Router		/locations/saved/{id} [delete]
func (h *SavedLocationHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteLocation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
