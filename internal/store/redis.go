package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mocktailx/exchange/pkg/models"
)

const (
	drinkKeyPrefix = "drink:"
	drinkIndexKey  = "drinks"

	// maxUpdateRetries bounds the optimistic CAS loop under contention.
	maxUpdateRetries = 16
)

// RedisStore persists each drink as a JSON document at drink:<name>,
// with a set of names at "drinks" acting as the catalog index.
type RedisStore struct {
	client *redis.Client
}

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(address, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// NewRedisStore creates a DrinkStore backed by the given Redis client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func drinkKey(name string) string {
	return drinkKeyPrefix + name
}

// List returns a point-in-time snapshot of every drink
func (s *RedisStore) List(ctx context.Context) ([]*models.Drink, error) {
	names, err := s.client.SMembers(ctx, drinkIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list drink names: %w", err)
	}
	if len(names) == 0 {
		return []*models.Drink{}, nil
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = drinkKey(name)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load drinks: %w", err)
	}

	drinks := make([]*models.Drink, 0, len(values))
	for i, value := range values {
		if value == nil {
			// Index entry without a document; skip rather than fail the
			// whole snapshot.
			continue
		}
		d, err := decodeDrink(value.(string))
		if err != nil {
			return nil, fmt.Errorf("failed to decode drink %q: %w", names[i], err)
		}
		drinks = append(drinks, d)
	}

	return drinks, nil
}

// Get returns the drink with the given name
func (s *RedisStore) Get(ctx context.Context, name string) (*models.Drink, error) {
	data, err := s.client.Get(ctx, drinkKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDrinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load drink %q: %w", name, err)
	}
	return decodeDrink(data)
}

// Create inserts the drink if absent; existing records are untouched
func (s *RedisStore) Create(ctx context.Context, d *models.Drink) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal drink %q: %w", d.Name, err)
	}

	created, err := s.client.SetNX(ctx, drinkKey(d.Name), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create drink %q: %w", d.Name, err)
	}
	if created {
		if err := s.client.SAdd(ctx, drinkIndexKey, d.Name).Err(); err != nil {
			return fmt.Errorf("failed to index drink %q: %w", d.Name, err)
		}
	}
	return nil
}

// Update applies mutate to the named drink under WATCH-based optimistic
// concurrency, retrying on conflicting writes up to maxUpdateRetries.
func (s *RedisStore) Update(ctx context.Context, name string, mutate MutateFunc) (*models.Drink, error) {
	key := drinkKey(name)
	var result *models.Drink

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return ErrDrinkNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load drink %q: %w", name, err)
		}

		d, err := decodeDrink(data)
		if err != nil {
			return fmt.Errorf("failed to decode drink %q: %w", name, err)
		}

		changed, err := mutate(d)
		if err != nil {
			return err
		}
		result = d
		if !changed {
			return nil
		}

		encoded, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to marshal drink %q: %w", name, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if errors.Is(err, redis.TxFailedErr) {
			// Another writer got in first; reload and retry.
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	return nil, fmt.Errorf("updating drink %q: %w", name, ErrConflict)
}

func decodeDrink(data string) (*models.Drink, error) {
	d := &models.Drink{}
	if err := json.Unmarshal([]byte(data), d); err != nil {
		return nil, err
	}
	if d.History == nil {
		d.History = []int64{}
	}
	return d, nil
}
