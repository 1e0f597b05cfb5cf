package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	mdw "developer-registry/internal/transport/http/middleware"
)

type Options struct {
	RPS            float64 // 全局限速；<=0 关闭
	Burst          int
	PerIPRPS       float64 // 每 IP 限速；<=0 关闭
	PerIPBurst     int
	MaxInFlight    int64
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		RPS:            200,
		Burst:          400,
		MaxInFlight:    300,
		MaxBodyBytes:   1 << 20,
		RequestTimeout: 10 * time.Second,
	}
}

func NewAPIEngine(l *zap.Logger, opt Options, mods ...APIModule) *gin.Engine {
	r := gin.New()

	chain := []gin.HandlerFunc{mdw.RequestID()}
	if opt.RPS > 0 {
		chain = append(chain, mdw.RateLimit(rate.Limit(opt.RPS), opt.Burst))
	}
	if opt.PerIPRPS > 0 {
		chain = append(chain, mdw.RateLimitPerIP(rate.Limit(opt.PerIPRPS), opt.PerIPBurst))
	}
	if opt.MaxInFlight > 0 {
		chain = append(chain, mdw.ConcurrencyLimit(opt.MaxInFlight))
	}
	if opt.MaxBodyBytes > 0 {
		chain = append(chain, mdw.MaxBodyBytes(opt.MaxBodyBytes))
	}
	if opt.RequestTimeout > 0 {
		chain = append(chain, mdw.Timeout(opt.RequestTimeout))
	}
	chain = append(chain,
		mdw.SimpleRecovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)
	r.Use(chain...)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	api := r.Group("/api/v1")
	MountAll(api, mods...)

	return r
}
