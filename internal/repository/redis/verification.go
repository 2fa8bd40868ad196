// Package redis implements the verification code store on a Redis
// instance. Expiry is enforced by Redis itself via key TTLs.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/referral-server/internal/model"
)

var _ model.VerificationStore = (*VerificationRepository)(nil)

const codeKeyPrefix = "sms_code:"

// consumeScript deletes the key only when its value matches, so the
// compare and the delete cannot interleave with another verification
// attempt. Returns -1 for a missing key, 1 for a consumed match and 0 for
// a mismatch.
var consumeScript = goredis.NewScript(`
local stored = redis.call('GET', KEYS[1])
if stored == false then
    return -1
end
if stored ~= ARGV[1] then
    return 0
end
redis.call('DEL', KEYS[1])
return 1
`)

type VerificationRepository struct {
	rdb *goredis.Client
}

func NewVerificationRepository(rdb *goredis.Client) *VerificationRepository {
	return &VerificationRepository{rdb: rdb}
}

// NewClient opens a Redis connection and verifies it with a ping.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}

func (r *VerificationRepository) Set(ctx context.Context, key, code string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, codeKeyPrefix+key, code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

func (r *VerificationRepository) Consume(ctx context.Context, key, code string) error {
	res, err := consumeScript.Run(ctx, r.rdb, []string{codeKeyPrefix + key}, code).Int()
	if err != nil {
		return fmt.Errorf("failed to consume verification code: %w", err)
	}

	switch res {
	case -1:
		return model.ErrCodeNotFound
	case 0:
		return model.ErrCodeMismatch
	default:
		return nil
	}
}
