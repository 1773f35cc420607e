package viewmodel

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"weather-location-api/internal/models"
	"weather-location-api/internal/observable"

	"github.com/rs/zerolog"
)

// AddressSearchState is a snapshot of the address search screen.
type AddressSearchState struct {
	SessionToken string              `json:"session_token"`
	SearchText   string              `json:"search_text"`
	Results      []models.Prediction `json:"results"`
}

// AddressSearchViewModel backs the address search screen. All queries it
// issues share one session token.
type AddressSearchViewModel struct {
	suggestions SuggestionService
	saver       LocationSaver
	log         zerolog.Logger
	token       models.SessionToken

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	searchText *observable.Value[string]
	results    *observable.Value[[]models.Prediction]

	mu          sync.Mutex
	generation  uint64
	cancelQuery context.CancelFunc
}

// NewAddressSearchViewModel creates a view model with a fresh session token
func NewAddressSearchViewModel(suggestions SuggestionService, saver LocationSaver, log zerolog.Logger) *AddressSearchViewModel {
	ctx, cancel := context.WithCancel(context.Background())
	token := models.NewSessionToken()
	return &AddressSearchViewModel{
		suggestions: suggestions,
		saver:       saver,
		log:         log.With().Str("component", "address_search").Stringer("session_token", token).Logger(),
		token:       token,
		ctx:         ctx,
		cancel:      cancel,
		searchText:  observable.NewValue(""),
		results:     observable.NewValue([]models.Prediction{}),
	}
}

// Token returns the session token used for every query of this view model.
func (vm *AddressSearchViewModel) Token() models.SessionToken {
	return vm.token
}

// SearchText returns the current query text.
func (vm *AddressSearchViewModel) SearchText() string {
	return vm.searchText.Get()
}

// Results returns the predictions of the latest applied query.
func (vm *AddressSearchViewModel) Results() []models.Prediction {
	return vm.results.Get()
}

// SubscribeResults streams the results list until ctx is done or the view model is closed.
func (vm *AddressSearchViewModel) SubscribeResults(ctx context.Context) <-chan []models.Prediction {
	return vm.results.Subscribe(boundTo(ctx, vm.ctx))
}

// State returns a snapshot of the screen.
func (vm *AddressSearchViewModel) State() AddressSearchState {
	return AddressSearchState{
		SessionToken: vm.token.String(),
		SearchText:   vm.searchText.Get(),
		Results:      vm.results.Get(),
	}
}

// OnSearchTextChanged records text and refreshes the results. Blank text
// clears the results immediately. Otherwise a query runs in the background,
// replacing any query still in flight.
func (vm *AddressSearchViewModel) OnSearchTextChanged(text string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.searchText.Set(text)

	vm.generation++
	if vm.cancelQuery != nil {
		vm.cancelQuery()
		vm.cancelQuery = nil
	}

	if strings.TrimSpace(text) == "" {
		vm.results.Set([]models.Prediction{})
		return
	}
	if vm.ctx.Err() != nil {
		return
	}

	ctx, cancel := context.WithCancel(vm.ctx)
	vm.cancelQuery = cancel
	vm.wg.Add(1)
	go vm.search(ctx, vm.generation, text)
}

func (vm *AddressSearchViewModel) search(ctx context.Context, generation uint64, text string) {
	defer vm.wg.Done()

	predictions, err := vm.suggestions.GetAddressSuggestions(ctx, text, vm.token)
	if err != nil {
		if ctx.Err() == nil {
			vm.log.Error().Err(err).Str("query", text).Msg("address suggestions failed")
		}
		return
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if generation != vm.generation || ctx.Err() != nil {
		vm.log.Debug().Str("query", text).Msg("dropping superseded suggestions")
		return
	}
	if predictions == nil {
		predictions = []models.Prediction{}
	}
	vm.results.Set(predictions)
}

// SaveLocation resolves placeID and adds it to the saved list
func (vm *AddressSearchViewModel) SaveLocation(ctx context.Context, placeID string) (*models.Location, error) {
	loc, err := vm.suggestions.GetLocationByPlaceID(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("viewmodel: failed to resolve place %s: %w", placeID, err)
	}

	saved, err := vm.saver.SaveLocation(ctx, *loc)
	if err != nil {
		return nil, fmt.Errorf("viewmodel: failed to save place %s: %w", placeID, err)
	}
	return saved, nil
}

// Close cancels the query in flight and waits for it to return.
func (vm *AddressSearchViewModel) Close() {
	vm.mu.Lock()
	vm.cancel()
	vm.mu.Unlock()
	vm.wg.Wait()
}
