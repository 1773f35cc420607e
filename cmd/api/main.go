package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "weather-location-api/docs"
	"weather-location-api/internal/config"
	"weather-location-api/internal/datastore"
	"weather-location-api/internal/handler"
	"weather-location-api/internal/places"
	"weather-location-api/internal/repository"
	"weather-location-api/internal/service"
	"weather-location-api/internal/session"
	"weather-location-api/internal/viewmodel"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

//	@title			Weather Location API
//	@version		1.0
//	@description	Current and saved locations, address search and map selection for the weather app.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	setupLogger(config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database connection
	conn, err := pgxpool.New(ctx, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	savedRepo := repository.NewRepository(conn)
	if err := savedRepo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot create schema")
	}

	store, closeStore, err := newLocationStore(ctx, config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open location store")
	}
	defer closeStore()

	provider, resolver, err := newPlacesProvider(config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create places client")
	}

	// Initialize layers
	locationRepo := repository.NewLocationRepository(store)

	locationService := service.NewLocationService(locationRepo, resolver, log.Logger)
	suggestionService := service.NewSuggestionService(provider)
	savedLocationService := service.NewSavedLocationService(savedRepo, log.Logger)

	modal := viewmodel.NewLocationModalViewModel(locationService, savedLocationService)

	searchSessions := session.NewRegistry[handler.AddressSearchScreen]("search", config.SessionIdleTimeout, log.Logger)
	mapSessions := session.NewRegistry[handler.MapScreen]("map", config.SessionIdleTimeout, log.Logger)

	newSearchScreen := func() handler.AddressSearchScreen {
		return viewmodel.NewAddressSearchViewModel(suggestionService, savedLocationService, log.Logger)
	}
	newMapScreen := func() (handler.MapScreen, error) {
		vm, err := viewmodel.NewMapViewModel(locationService, resolver, savedLocationService, log.Logger)
		if err != nil {
			return nil, err
		}
		return vm, nil
	}

	handlers := handler.Handlers{
		Location: handler.NewLocationHandler(modal, locationService, log.Logger),
		Saved:    handler.NewSavedLocationHandler(savedLocationService, log.Logger),
		Search:   handler.NewSearchSessionHandler(searchSessions, newSearchScreen, log.Logger),
		Map:      handler.NewMapSessionHandler(mapSessions, newMapScreen, log.Logger),
	}
	if config.SearchRateLimit > 0 {
		handlers.SearchLimiter = handler.NewIPRateLimiter(config.SearchRateLimit, config.SearchRateBurst, config.SearchRateIdle, log.Logger)
	}

	server := newServer(ctx, config.ServerAddress, handler.NewRouter(handlers, log.Logger))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("address", config.ServerAddress).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdown(server, shutdownTimeout)
		return nil
	})
	g.Go(func() error { return searchSessions.Run(gctx) })
	g.Go(func() error { return mapSessions.Run(gctx) })
	if handlers.SearchLimiter != nil {
		g.Go(func() error { return handlers.SearchLimiter.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

// newServer serves h on addr. Request contexts derive from ctx, so open
// event streams end as soon as ctx is cancelled.
func newServer(ctx context.Context, addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
}

func shutdown(server *http.Server, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("server did not shut down cleanly")
	}
}

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return
	}
	gin.SetMode(gin.ReleaseMode)
}

func newLocationStore(ctx context.Context, cfg config.Config) (datastore.LocationDataStore, func(), error) {
	if cfg.LocationStore != config.StoreRedis {
		return datastore.NewMemoryStore(), func() {}, nil
	}

	rdb, err := datastore.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("cannot close redis client")
		}
	}
	return datastore.NewRedisStore(rdb, log.Logger), closeStore, nil
}

// newPlacesProvider returns a nil resolver when no API key is configured.
func newPlacesProvider(cfg config.Config) (service.SuggestionProvider, service.AddressResolver, error) {
	if cfg.GoogleMapsAPIKey == "" {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY not set, address search disabled")
		return places.Disabled{}, nil, nil
	}

	client, err := places.NewGoogleClient(cfg.GoogleMapsAPIKey)
	if err != nil {
		return nil, nil, err
	}
	provider := places.NewGoogleProvider(client, cfg.PlacesLanguage)
	return provider, provider, nil
}
