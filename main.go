package main

import (
	"flag"

	"github.com/auscompgeek/newbot/storage"
)

func main() {
	configPath := flag.String("config", "newbot.yaml", "path to config file")
	logLevel := flag.String("log", "", "override log level (debug|info|warn|error)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		NewLogger("error").Fatalf("load config: %v", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	logger := NewLogger(cfg.LogLevel)

	accounts := storage.NewAccountDB(cfg.AccountsFile)
	if err := accounts.Load(); err != nil {
		logger.Fatalf("load accounts: %v", err)
	}

	bot := NewBot(cfg, logger)
	RegisterHandlers(bot, accounts)

	logger.Infof("connecting to %s:%d as %s", cfg.Server, cfg.Port, cfg.Nick)
	if err := bot.Connect(); err != nil {
		logger.Fatalf("connect: %v", err)
	}
	bot.Loop()
}
