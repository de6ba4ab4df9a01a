package store

import (
	"context"
	stderrors "errors"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/boxwire/pkg/errors"
	"github.com/matzehuels/boxwire/pkg/observability"
)

// DefaultPrefix is the key prefix used when none is configured.
const DefaultPrefix = "boxwire:"

// RedisClient is the subset of *redis.Client the store uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisConfig configures [NewRedisStore].
type RedisConfig struct {
	Addr   string
	DB     int
	Prefix string

	// Attempts is how often the initial ping is tried, default 3.
	Attempts int
}

// RedisStore keeps diagrams as Redis strings under a key prefix.
type RedisStore struct {
	client RedisClient
	prefix string
}

// NewRedisStore connects to Redis and checks the connection, backing off
// between attempts.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, DB: cfg.DB})
	if err := ping(ctx, client, cfg.Attempts); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "connect redis %s", cfg.Addr)
	}
	return NewRedisStoreWithClient(client, cfg.Prefix), nil
}

// NewRedisStoreWithClient wraps an existing client. An empty prefix uses
// [DefaultPrefix].
func NewRedisStoreWithClient(client RedisClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func ping(ctx context.Context, client RedisClient, attempts int) error {
	if attempts <= 0 {
		attempts = 3
	}
	return retry(ctx, attempts, 200*time.Millisecond, func() error {
		return client.Ping(ctx).Err()
	})
}

func (s *RedisStore) key(name string) string { return s.prefix + "diagram:" + name }

// Get reads a stored diagram.
func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		observability.Store().OnStoreMiss(ctx, "redis")
		return nil, notFound(name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "get %s", name)
	}
	observability.Store().OnStoreHit(ctx, "redis")
	return data, nil
}

// Put writes a diagram without expiration.
func (s *RedisStore) Put(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "set %s", name)
	}
	observability.Store().OnStoreWrite(ctx, "redis", len(data))
	return nil
}

// Delete removes a diagram.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	n, err := s.client.Del(ctx, s.key(name)).Result()
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "delete %s", name)
	}
	if n == 0 {
		return notFound(name)
	}
	return nil
}

// List scans the prefix for diagram keys.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	match := s.key("*")
	base := s.key("")
	var (
		names  []string
		cursor uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, match, 100).Result()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "scan %s", match)
		}
		for _, k := range keys {
			if name, ok := strings.CutPrefix(k, base); ok && ValidName(name) {
				names = append(names, name)
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
