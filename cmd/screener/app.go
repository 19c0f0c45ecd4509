package main

import (
	"fmt"

	"go.uber.org/zap"

	"IDXScreener/internal/collector"
	"IDXScreener/internal/config"
	"IDXScreener/internal/logger"
	"IDXScreener/internal/notifier"
	"IDXScreener/internal/screener"
)

// app is the wired object graph shared by the run and serve commands.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	screener  *screener.Screener
	email     notifier.Notifier
	telegram  *notifier.TelegramNotifier
	notifiers []notifier.Notifier
}

func newApp(cfg *config.Config, log *logger.Logger, progress bool) (*app, error) {
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("data source", zap.String("provider", fetcher.Name()))

	opts := screener.DefaultOptions()
	if len(cfg.Market.Symbols) > 0 {
		opts.Symbols = cfg.Market.Symbols
	}
	opts.DailyPeriod = cfg.Market.DailyPeriod
	opts.IntradayPeriod = cfg.Market.IntradayPeriod
	opts.IntradayInterval = cfg.Market.IntradayInterval
	opts.Workers = cfg.Market.Workers
	opts.Progress = progress

	a := &app{
		cfg:      cfg,
		log:      log,
		screener: screener.New(fetcher, newUniverse(cfg, log), opts, log),
	}

	if cfg.EmailEnabled() {
		a.email = notifier.NewEmailNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
		if cfg.RecipientEmail != "" {
			a.notifiers = append(a.notifiers, a.email)
		}
	}
	if cfg.TelegramEnabled() {
		a.telegram = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		a.notifiers = append(a.notifiers, a.telegram)
	}
	return a, nil
}

func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	switch cfg.Market.Provider {
	case "polygon":
		f, err := collector.NewPolygonFetcher(cfg.Market.PolygonAPIKey)
		if err != nil {
			return nil, fmt.Errorf("init polygon: %w", err)
		}
		return f, nil
	case "mock":
		return &collector.MockFetcher{Price: 1000}, nil
	}
	return collector.NewYahooFetcher(cfg.Proxy), nil
}

// newUniverse prefers the remote list, then the configured symbols; the
// screener falls back to the default five when both are absent.
func newUniverse(cfg *config.Config, log *logger.Logger) collector.UniverseSource {
	switch {
	case cfg.Market.UniverseURL != "":
		return &collector.Universe{
			Source: collector.NewHTTPUniverseSource(cfg.Market.UniverseURL, cfg.Market.Suffix, cfg.Proxy),
			Logger: log,
		}
	case len(cfg.Market.Symbols) > 0:
		return &collector.Universe{Source: collector.StaticUniverseSource(cfg.Market.Symbols), Logger: log}
	}
	return nil
}
