package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const MemberTokenPrefix = "login:member:token"

// TokenRepository 每个成员只保存一个有效 access token，新登录会顶掉旧会话
type TokenRepository struct {
	Client *redis.Client
	TTL    time.Duration
}

func tokenKey(memberID uint64) string {
	return fmt.Sprintf("%s:%d", MemberTokenPrefix, memberID)
}

func (r *TokenRepository) Save(ctx context.Context, memberID uint64, token string) error {
	if err := r.Client.Set(ctx, tokenKey(memberID), token, r.TTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *TokenRepository) Get(ctx context.Context, memberID uint64) (string, error) {
	token, err := r.Client.Get(ctx, tokenKey(memberID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// Extend 滑动过期
func (r *TokenRepository) Extend(ctx context.Context, memberID uint64) error {
	if err := r.Client.Expire(ctx, tokenKey(memberID), r.TTL).Err(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *TokenRepository) Delete(ctx context.Context, memberID uint64) error {
	if err := r.Client.Del(ctx, tokenKey(memberID)).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
