package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"developer-registry/internal/core/config"
	"developer-registry/internal/core/database"
	"developer-registry/internal/core/lock"
	"developer-registry/internal/core/logger"
	"developer-registry/internal/core/server"
	"developer-registry/internal/repo"
	"developer-registry/internal/service"
	"developer-registry/internal/transport/http/handler"
	"developer-registry/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, cleanup := logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Enable:     cfg.Log.File.Enable,
		Filename:   cfg.Log.File.Filename,
		MaxSizeMB:  cfg.Log.File.MaxSizeMB,
		MaxBackups: cfg.Log.File.MaxBackups,
		MaxAgeDays: cfg.Log.File.MaxAgeDays,
		Compress:   cfg.Log.File.Compress,
	})
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.WarnLevel)()

	if err := run(cfg, log); err != nil {
		log.Error("developer registry exited", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
	log.Info("developer registry stopped gracefully")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			return fmt.Errorf("automigrate: %w", err)
		}
		log.Info("automigrate done")
	}

	// 邮箱锁（可选）
	var locker service.EmailLocker = lock.Noop{}
	ready := router.Pinger(func(ctx context.Context) error { return database.Ping(ctx, db) })
	if cfg.Redis.Addr != "" {
		rl := lock.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.LockTTL())
		defer rl.Close()
		if err := rl.RDB.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, creates will fail until it recovers", zap.Error(err))
		}
		locker = rl
		ready = func(ctx context.Context) error {
			if err := database.Ping(ctx, db); err != nil {
				return err
			}
			return rl.RDB.Ping(ctx).Err()
		}
		log.Info("email lock enabled", zap.String("redis", cfg.Redis.Addr))
	}

	svc := service.NewDeveloperService(repo.NewDeveloperRepo(db),
		service.WithLocker(locker),
		service.WithLogger(log.Named("developer")),
	)

	api := router.NewAPIEngine(log, router.Options{
		RPS:            cfg.Limits.RPS,
		Burst:          cfg.Limits.Burst,
		PerIPRPS:       cfg.Limits.PerIPRPS,
		PerIPBurst:     cfg.Limits.PerIPBurst,
		MaxInFlight:    cfg.Limits.MaxInFlight,
		MaxBodyBytes:   cfg.Limits.MaxBodyBytes,
		RequestTimeout: cfg.Limits.RequestTimeout(),
	}, handler.NewDeveloperHandler(svc))
	ops := router.NewOpsEngine(log.Named("ops"), ready)

	h := cfg.App.HTTP
	apiSrv := server.BuildServer(server.Addr(h.Host, h.Port), api, h.ReadTimeout(), h.WriteTimeout(), h.IdleTimeout())
	opsSrv := server.BuildServer(server.Addr(cfg.App.Ops.Host, cfg.App.Ops.Port), ops, h.ReadTimeout(), h.WriteTimeout(), h.IdleTimeout())

	log.Info("developer registry starting",
		zap.String("env", cfg.App.Env),
		zap.String("api", apiSrv.Addr+"/api/v1"),
		zap.String("ops", opsSrv.Addr),
	)
	return server.Serve(ctx, log, h.ShutdownGrace(), apiSrv, opsSrv)
}

func openDB(ctx context.Context, cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                l,
	})
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	if err := database.Ping(ctx, db); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))
	return db, nil
}
