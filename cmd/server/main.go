package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wfunc/rgs-engine/internal/api"
	"github.com/wfunc/rgs-engine/internal/config"
	"github.com/wfunc/rgs-engine/internal/database"
	"github.com/wfunc/rgs-engine/internal/game"
	"github.com/wfunc/rgs-engine/internal/logger"
	"github.com/wfunc/rgs-engine/internal/session"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "配置初始化失败: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Cleanup()

	config.Watch(func(c *config.Config) {
		logger.Info("配置已热更新", zap.String("log_level", c.Log.Level))
	})

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("数据库初始化失败", zap.Error(err))
	}
	defer database.Close()

	// 会话存储：启用Redis时跨实例共享，否则进程内存
	var store session.Store
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("Redis连接失败", zap.Error(err))
		}
		store = session.NewRedisStore(client, "rgs:session:")
		logger.Info("会话存储使用Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		store = session.NewMemoryStore()
	}

	svc := game.NewService(database.GetDB(), store, cfg.Game.SessionTTL)
	router := api.NewRouter(cfg, svc)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("收到退出信号，开始优雅关闭")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("优雅关闭失败", zap.Error(err))
	}
	logger.Info("服务已退出")
}
