package preset

import (
	"context"
	"errors"
	"slices"

	"github.com/redis/go-redis/v9"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/observability"
)

// DefaultRedisPrefix namespaces preset keys.
const DefaultRedisPrefix = "tilegen:"

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces keys. Empty means DefaultRedisPrefix.
	Prefix string
}

// RedisStore keeps presets in Redis as TOML strings under <prefix>preset:<name>,
// with the set <prefix>presets indexing the names.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "connect to redis at %s", cfg.Addr)
	}
	return NewRedisStoreFromClient(client, cfg.Prefix), nil
}

// NewRedisStoreFromClient wraps an existing client. The store owns client
// and closes it in Close.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(name string) string { return s.prefix + "preset:" + name }
func (s *RedisStore) indexKey() string       { return s.prefix + "presets" }

func (s *RedisStore) Get(ctx context.Context, name string) (*Preset, error) {
	if err := tgerrors.ValidatePresetName(name); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.Preset().OnPresetLoad(ctx, "redis", name, false)
		return nil, tgerrors.New(tgerrors.ErrCodePresetNotFound, "preset %q not found", name)
	}
	if err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "redis get %s", name)
	}
	observability.Preset().OnPresetLoad(ctx, "redis", name, true)

	p, err := Decode(data, FormatTOML)
	if err != nil {
		return nil, err
	}
	p.Name = name
	return p, nil
}

func (s *RedisStore) Put(ctx context.Context, name string, p *Preset) error {
	if err := tgerrors.ValidatePresetName(name); err != nil {
		return err
	}
	if _, err := p.Params(); err != nil {
		return tgerrors.Wrap(tgerrors.ErrCodeInvalidPreset, err, "preset %q", name)
	}
	stored := *p
	stored.Name = name
	data, err := Encode(&stored, FormatTOML)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(name), data, 0)
		pipe.SAdd(ctx, s.indexKey(), name)
		return nil
	})
	if err != nil {
		return tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "redis put %s", name)
	}
	observability.Preset().OnPresetSave(ctx, "redis", name, len(data))
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := tgerrors.ValidatePresetName(name); err != nil {
		return err
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(name))
		pipe.SRem(ctx, s.indexKey(), name)
		return nil
	})
	if err != nil {
		return tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "redis delete %s", name)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "redis list presets")
	}
	slices.Sort(names)
	return names, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
