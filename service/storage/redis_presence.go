package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

var (
	rdb *redis.Client
	ctx = context.Background()
)

func InitRedis(c Config) error {
	cli := redis.NewClient(&redis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB})
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return err
	}
	rdb = cli
	return nil
}

// Enabled reports whether a redis client has been configured. The presence
// recorder is best-effort: everything below degrades to a no-op without redis.
func Enabled() bool { return rdb != nil }

// presence key: collab:presence:<user>
// value: the document id the user is editing, TTL controls validity
func presenceKey(user string) string { return "collab:presence:" + user }

// PresenceOnline marks the user as editing a document and renews the TTL.
func PresenceOnline(user, documentID string, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	return rdb.Set(ctx, presenceKey(user), documentID, ttl).Err()
}

// PresenceOffline actively sets the user offline (deletes the key).
func PresenceOffline(user string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, presenceKey(user)).Err()
}

// PresenceLookup checks whether the user is online and on which document.
func PresenceLookup(user string) (documentID string, online bool, err error) {
	if rdb == nil {
		return "", false, nil
	}
	val, err := rdb.Get(ctx, presenceKey(user)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}
