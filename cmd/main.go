package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"levelup/auth"
	"levelup/cache"
	"levelup/config"
	"levelup/db"
	"levelup/monitoring"
	"levelup/router"
	"levelup/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	utils.InitLogger(cfg.LogLevel, cfg.LogFile, cfg.IsRelease())
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	auth.Configure(cfg.JWTSecret, cfg.TokenTTL)
	monitoring.InitMetrics()

	if err := db.InitDB(cfg.DatabaseURL, cfg.SeedGameTypes); err != nil {
		utils.Log.WithError(err).Fatal("Database setup failed")
	}
	defer db.Close()

	if cfg.RedisURL != "" {
		if err := cache.InitRedis(cfg.RedisURL, cfg.RedisPassword); err != nil {
			utils.Log.WithError(err).Warn("Redis unavailable, running without cache and rate limiting")
		} else {
			utils.Log.WithField("addr", cache.RedisClient.Options().Addr).Info("Redis connected")
			defer cache.CloseRedis()
		}
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	useHTTPS := cfg.UseHTTPS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""
	if useHTTPS {
		server.TLSConfig = &tls.Config{
			MinVersion:       tls.VersionTLS12,
			CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
		}
	}

	go func() {
		var err error
		if useHTTPS {
			utils.Log.WithFields(logrus.Fields{"port": cfg.Port, "cert": cfg.TLSCertFile}).Info("Starting server with HTTPS")
			err = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			utils.Log.WithField("port", cfg.Port).Info("Starting server with HTTP")
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		utils.Log.WithError(err).Error("Forced shutdown")
	}
}
