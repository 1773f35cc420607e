package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	currentLocationKey     = "location:current"
	currentLocationChannel = "location:current:changed"
)

// RedisStore keeps the current location under a key and announces every
// write on a pub/sub channel.
type RedisStore struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisStore creates a store on an existing client.
func NewRedisStore(rdb *redis.Client, log zerolog.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, log: log.With().Str("component", "redis_datastore").Logger()}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("datastore: invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("datastore: cannot reach redis: %w", err)
	}
	return rdb, nil
}

func (s *RedisStore) Location(ctx context.Context) (<-chan *LocationDTO, error) {
	// Subscribe before reading so no write between the two is missed.
	pubsub := s.rdb.Subscribe(ctx, currentLocationChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("datastore: failed to subscribe: %w", err)
	}

	current, err := s.load(ctx)
	if err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	out := make(chan *LocationDTO)
	go func() {
		defer close(out)
		defer pubsub.Close()

		if !send(ctx, out, current) {
			return
		}

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				dto, err := decode([]byte(msg.Payload))
				if err != nil {
					s.log.Error().Err(err).Msg("dropping undecodable location notification")
					continue
				}
				if !send(ctx, out, dto) {
					return
				}
			}
		}
	}()

	return out, nil
}

func (s *RedisStore) UpdateLocation(ctx context.Context, location LocationDTO) error {
	data, err := json.Marshal(location)
	if err != nil {
		return fmt.Errorf("datastore: failed to encode location: %w", err)
	}
	return s.write(ctx, data, func(pipe redis.Pipeliner) {
		pipe.Set(ctx, currentLocationKey, data, 0)
	})
}

func (s *RedisStore) ClearLocation(ctx context.Context) error {
	return s.write(ctx, []byte("null"), func(pipe redis.Pipeliner) {
		pipe.Del(ctx, currentLocationKey)
	})
}

// write applies change and publishes payload in one MULTI/EXEC, so concurrent
// writers announce their values in the order they were stored.
func (s *RedisStore) write(ctx context.Context, payload []byte, change func(redis.Pipeliner)) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		change(pipe)
		pipe.Publish(ctx, currentLocationChannel, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("datastore: failed to write location: %w", err)
	}
	return nil
}

func (s *RedisStore) load(ctx context.Context) (*LocationDTO, error) {
	data, err := s.rdb.Get(ctx, currentLocationKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("datastore: failed to read location: %w", err)
	}
	return decode(data)
}

// decode treats a JSON null as an absent location.
func decode(data []byte) (*LocationDTO, error) {
	var dto *LocationDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("datastore: failed to decode location: %w", err)
	}
	return dto, nil
}

func send(ctx context.Context, out chan<- *LocationDTO, dto *LocationDTO) bool {
	select {
	case out <- dto:
		return true
	case <-ctx.Done():
		return false
	}
}
