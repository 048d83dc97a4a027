package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"logiq/ai"
	"logiq/bot"
	"logiq/config"
	"logiq/logger"
	"logiq/servers"
	"logiq/storage"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to config.yaml")
	pflag.Parse()

	// .envがあれば環境変数として読み込む。設定ファイル内の${VAR}が参照する。
	_ = godotenv.Load()

	if err := config.Load(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "設定の読み込みに失敗しました:", err)
		os.Exit(1)
	}

	log := logger.New(config.Cfg.Logging.Level, config.Cfg.Logging.File)

	store, err := storage.NewDBStore(config.Cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to open database", "error", err)
	}
	defer store.Close()

	var aiClient *ai.Client
	if key := config.Cfg.AI.GeminiAPIKey; key != "" {
		aiClient, err = ai.NewClient(context.Background(), key, config.Cfg.AI.Model)
		if err != nil {
			log.Fatal("Failed to create AI client", "error", err)
		}
		defer aiClient.Close()
	} else {
		log.Warn("Gemini API key is not set. AI features are disabled")
	}

	b, err := bot.New(log, store, aiClient)
	if err != nil {
		log.Fatal("Failed to initialize bot", "error", err)
	}

	manager := servers.NewManager(log)
	manager.Add(b)
	if config.Cfg.Web.Enabled {
		manager.Add(servers.NewWebServer(log, store, b.Session, b.StartTime()))
	}

	if err := manager.StartAll(); err != nil {
		log.Fatal("Failed to start services", "error", err)
	}
	log.Info("Logiq is running. Press Ctrl+C to exit")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Info("Shutting down")
	manager.StopAll()
}
