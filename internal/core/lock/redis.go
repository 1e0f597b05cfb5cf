package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLocked = errors.New("lock: key is held")

// 只删除自己持有的锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Redis struct {
	RDB    *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedis(addr, pass string, db int, ttl time.Duration) *Redis {
	return &Redis{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		Prefix: "developer:email:",
		TTL:    ttl,
	}
}

// Lock SET NX PX；返回的 unlock 可重复调用
func (l *Redis) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	k := l.Prefix + key
	ok, err := l.RDB.SetNX(ctx, k, token, l.TTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() {
		// 请求 ctx 可能已取消，释放用独立 ctx
		rctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(rctx, l.RDB, []string{k}, token).Err()
	}, nil
}

func (l *Redis) Close() error { return l.RDB.Close() }

// Noop 未配置 redis 时使用
type Noop struct{}

func (Noop) Lock(context.Context, string) (func(), error) { return func() {}, nil }
