package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	config "github.com/greenroots/social-server/config"
	controllers "github.com/greenroots/social-server/controllers"
	routes "github.com/greenroots/social-server/routes"
	store "github.com/greenroots/social-server/store"
	utils "github.com/greenroots/social-server/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	connectCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	err = cfg.Connect(connectCtx, logger)
	cancel()
	if err != nil {
		logger.Fatal("mongodb unavailable", zap.Error(err))
	}

	st := store.New(cfg.Database())
	env := &controllers.Env{
		Trees:  st.Trees,
		Events: st.Events,
		Joins:  st.Joins,
		DB:     st,
		Log:    logger,
	}

	if cfg.CloudinaryEnabled() {
		uploader, err := utils.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logger.Fatal("cloudinary setup failed", zap.Error(err))
		}
		env.Uploader = uploader
	} else {
		logger.Info("cloudinary not configured, thumbnail uploads disabled")
	}

	if cfg.MailEnabled() {
		env.Notifier = utils.NewMailer(cfg.ZeptoAPIURL, cfg.ZeptoAPIKey, cfg.EmailFrom)
	} else {
		logger.Info("zeptomail not configured, join confirmations disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes.NewRouter(env, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("social server is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := env.WaitForNotifications(shutdownCtx); err != nil {
		logger.Warn("join confirmations still pending at shutdown", zap.Error(err))
	}
	if err := cfg.MongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Error("mongodb disconnect", zap.Error(err))
	}
}
