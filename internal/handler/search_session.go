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

// AddressSearchScreen is the view model behind one address search session
type AddressSearchScreen interface {
	State() viewmodel.AddressSearchState
	OnSearchTextChanged(text string)
	SaveLocation(ctx context.Context, placeID string) (*models.Location, error)
	SubscribeResults(ctx context.Context) <-chan []models.Prediction
	Close()
}

// SearchSessionHandler handles address search sessions
type SearchSessionHandler struct {
	sessions  *session.Registry[AddressSearchScreen]
	newScreen func() AddressSearchScreen
	log       zerolog.Logger
}

// NewSearchSessionHandler creates a new search session handler
func NewSearchSessionHandler(sessions *session.Registry[AddressSearchScreen], newScreen func() AddressSearchScreen, log zerolog.Logger) *SearchSessionHandler {
	return &SearchSessionHandler{
		sessions:  sessions,
		newScreen: newScreen,
		log:       log.With().Str("component", "search_session_handler").Logger(),
	}
}

type searchSessionResponse struct {
	ID string `json:"id"`
	viewmodel.AddressSearchState
}

type searchTextRequest struct {
	Text string `json:"text"`
}

type savePlaceRequest struct {
	PlaceID string `json:"place_id" binding:"required"`
}

// Create handles POST /search-sessions requests
//
//	@Summary	Open an address search session
//	@Tags		search
//	@Produce	json
//	@Success	201	{object}	searchSessionResponse
//	@Router		/search-sessions [post]
func (h *SearchSessionHandler) Create(c *gin.Context) {
	screen := h.newScreen()
	id := h.sessions.Create(screen)

	c.JSON(http.StatusCreated, searchSessionResponse{ID: id, AddressSearchState: screen.State()})
}

// Get handles GET /search-sessions/:id requests
//
//	@Summary	Address search state
//	@Tags		search
//	@Produce	json
//	@Param		id	path	string	true	"Session id"
//	@Success	200	{object}	searchSessionResponse
//	@Router		/search-sessions/{id} [get]
func (h *SearchSessionHandler) Get(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, searchSessionResponse{ID: c.Param("id"), AddressSearchState: screen.State()})
}

// Delete handles DELETE /search-sessions/:id requests
//
//	@Summary	Close an address search session
//	@Tags		search
//	@Param		id	path	string	true	"Session id"
//	@Success	204
//	@Router		/search-sessions/{id} [delete]
func (h *SearchSessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateText handles PUT /search-sessions/:id/text requests. The results
// are refreshed in the background.
//
//	@Summary	Change the search text
//	@Tags		search
//	@Accept		json
//	@Produce	json
//	@Param		id	path	string	true	"Session id"
//	@Success	202	{object}	searchSessionResponse
//	@Router		/search-sessions/{id}/text [put]
func (h *SearchSessionHandler) UpdateText(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}

	var req searchTextRequest
	if !bindJSON(c, &req) {
		return
	}

	screen.OnSearchTextChanged(req.Text)
	c.JSON(http.StatusAccepted, searchSessionResponse{ID: c.Param("id"), AddressSearchState: screen.State()})
}

// Save handles POST /search-sessions/:id/save requests
//
//	@Summary	Save a suggested place
//	@Tags		search
//	@Accept		json
//	@Produce	json
//	@Param		id	path	string	true	"Session id"
//	@Success	201	{object}	models.Location
//	@Router		/search-sessions/{id}/save [post]
func (h *SearchSessionHandler) Save(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}

	var req savePlaceRequest
	if !bindJSON(c, &req) {
		return
	}

	location, err := screen.SaveLocation(c.Request.Context(), req.PlaceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, location)
}

// StreamResults handles GET /search-sessions/:id/results/stream requests
//
//	@Summary	Stream search results as server-sent events
//	@Tags		search
//	@Produce	text/event-stream
//	@Param		id	path	string	true	"Session id"
//	@Router		/search-sessions/{id}/results/stream [get]
func (h *SearchSessionHandler) StreamResults(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}

	results := screen.SubscribeResults(c.Request.Context())
	streamEvents(c, "results", results, func(p []models.Prediction) []models.Prediction { return p })
}

func (h *SearchSessionHandler) screen(c *gin.Context) (AddressSearchScreen, bool) {
	screen, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return nil, false
	}
	return screen, true
}
