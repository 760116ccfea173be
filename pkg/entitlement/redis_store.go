package entitlement

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStoreConfig holds configuration for the Redis-backed snapshot store.
type RedisStoreConfig struct {
	KeyPrefix string        `env:"ENTITLEMENT_REDIS_PREFIX" envDefault:"billing:snapshot:"`
	TTL       time.Duration `env:"ENTITLEMENT_REDIS_TTL" envDefault:"24h"`
}

// RedisStore persists snapshots in Redis so multiple processes serving the
// same device share one cached entitlement view. Entries expire after the
// configured TTL; an expired entry just forces the next refresh.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed snapshot store. Panics on a nil
// client to fail fast during initialization.
func NewRedisStore(client *redis.Client, cfg RedisStoreConfig) *RedisStore {
	if client == nil {
		panic("entitlement: redis client is required")
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "billing:snapshot:"
	}

	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    cfg.TTL,
	}
}

func (s *RedisStore) Get(ctx context.Context, deviceID string) (*Snapshot, error) {
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	data, err := s.client.Get(ctx, s.prefix+deviceID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *RedisStore) Save(ctx context.Context, deviceID string, snap *Snapshot) error {
	if deviceID == "" {
		return ErrMissingDeviceID
	}
	if snap == nil {
		return ErrNilSnapshot
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+deviceID, data, s.ttl).Err()
}
