package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	authservice "github.com/safartours/safarserver/auth/service"
	"github.com/safartours/safarserver/auth/storage"
	authpostgres "github.com/safartours/safarserver/auth/storage/postgres"
	authsqlite "github.com/safartours/safarserver/auth/storage/sqlite"
	botsqlite "github.com/safartours/safarserver/bot/botstorage/sqlite"
	"github.com/safartours/safarserver/bot/tgbot"
	"github.com/safartours/safarserver/internal/config"
	"github.com/safartours/safarserver/internal/logger"
	"github.com/safartours/safarserver/internal/service"
	"github.com/safartours/safarserver/internal/storage/sqlite"
	"github.com/safartours/safarserver/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.New()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.Debug)

	var authCfg authservice.Config
	_, err = toml.DecodeFile("configs/auth.toml", &authCfg)
	if err != nil {
		return err
	}
	if token := os.Getenv("AUTH_TOKEN"); token != "" {
		authCfg.Token = token
	}

	var authStorage storage.AuthStorage
	switch authCfg.Driver {
	case "postgres":
		authStorage, err = authpostgres.New(ctx, log, authCfg)
	default:
		authStorage, err = authsqlite.New(log, authCfg)
	}
	if err != nil {
		return err
	}

	authService, err := authservice.New(ctx, authCfg, authStorage, log)
	if err != nil {
		return err
	}

	catalogStorage, err := sqlite.New(log, cfg.Server)
	if err != nil {
		return err
	}
	catalogService := service.New(catalogStorage, catalogStorage, log)

	if cfg.Server.TgBotEnabled {
		botStorage, err := botsqlite.New(log, cfg.TgBot)
		if err != nil {
			return err
		}
		bot, err := tgbot.New(catalogService, botStorage, cfg, log)
		if err != nil {
			return err
		}
		go bot.Run()
		defer bot.Stop()
		catalogService.SetNotifier(&bot)
	}

	server := web.New(catalogService, cfg.Server, authService, log)
	return server.Serve()
}
