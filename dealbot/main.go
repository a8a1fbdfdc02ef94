package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dealbot/dealbot/agents/composer"
	"dealbot/dealbot/agents/configs"
	"dealbot/dealbot/agents/extractor"
	"dealbot/dealbot/config"
	"dealbot/dealbot/controllers"
	"dealbot/dealbot/marketplace"
	"dealbot/dealbot/pipeline"
	"dealbot/dealbot/routes"
	"dealbot/dealbot/services/llm"
	"dealbot/dealbot/services/scraper"
	"dealbot/dealbot/sources/psql"
	"dealbot/dealbot/sources/psql/dao"
	"dealbot/dealbot/sources/storage"
	"dealbot/dealbot/utils/logging"

	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.ErrorLogger.Error("config error", zap.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	scr, err := scraper.NewScraper()
	if err != nil {
		logging.ErrorLogger.Error("playwright init error", zap.Error(err))
		os.Exit(1)
	}
	defer scr.Close()

	var cache marketplace.OfferCache
	if cfg.MinIOEndpoint != "" {
		offerCache, err := storage.NewOfferCache(cfg)
		if err != nil {
			logging.ErrorLogger.Error("minio connection error", zap.Error(err))
			os.Exit(1)
		}
		cache = offerCache
	}

	llmClient := llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel)
	agentCfg := configs.LoadConfig()

	amazon := marketplace.NewAdapter(marketplace.AmazonSite(cfg.AmazonBaseURL), scr, llmClient, cache)
	flipkart := marketplace.NewAdapter(marketplace.FlipkartSite(cfg.FlipkartBaseURL), scr, llmClient, cache)
	pipe := pipeline.New(
		extractor.New(llmClient, agentCfg),
		amazon,
		flipkart,
		composer.New(llmClient, agentCfg),
	)

	userDAO := dao.NewUserDAO(db.DB)
	convDAO := dao.NewConversationDAO(db.DB)
	msgDAO := dao.NewMessageDAO(db.DB)
	authCtrl := controllers.NewAuthController(userDAO, cfg)
	chatCtrl := controllers.NewChatController(convDAO, msgDAO, pipe)
	healthCtrl := controllers.NewHealthController()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: routes.New(cfg, authCtrl, chatCtrl, healthCtrl),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	logging.AppLogger.Info("dealbot listening", zap.String("port", cfg.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
