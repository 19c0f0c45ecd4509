package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IDXScreener/internal/collector"
	"IDXScreener/internal/config"
	"IDXScreener/internal/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	for _, k := range []string{"EMAIL_SENDER", "EMAIL_PASSWORD", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "UNIVERSE_URL", "RECIPIENT_EMAIL"} {
		t.Setenv(k, "")
	}
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	return cfg
}

func TestNewApp_Notifiers(t *testing.T) {
	cfg := testConfig(t)
	a, err := newApp(cfg, logger.Nop(), false)
	require.NoError(t, err)
	assert.Nil(t, a.email)
	assert.Nil(t, a.telegram)
	assert.Empty(t, a.notifiers)

	cfg.SMTP.From = "bot@example.com"
	cfg.SMTP.Password = "secret"
	cfg.RecipientEmail = "me@example.com"
	cfg.Telegram.BotToken = "token"
	cfg.Telegram.ChatID = "42"
	a, err = newApp(cfg, logger.Nop(), false)
	require.NoError(t, err)
	require.Len(t, a.notifiers, 2)
	assert.Equal(t, "email", a.notifiers[0].Name())
	assert.Equal(t, "telegram", a.notifiers[1].Name())
}

func TestNewFetcher(t *testing.T) {
	cfg := testConfig(t)
	f, err := newFetcher(cfg)
	require.NoError(t, err)
	assert.Equal(t, "yahoo", f.Name())

	cfg.Market.Provider = "mock"
	f, err = newFetcher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &collector.MockFetcher{}, f)
}

func TestNewUniverse(t *testing.T) {
	cfg := testConfig(t)
	assert.Nil(t, newUniverse(cfg, logger.Nop()))

	cfg.Market.Symbols = []string{"BBRI.JK"}
	u := newUniverse(cfg, logger.Nop())
	require.NotNil(t, u)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	syms, err := u.ListSymbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"BBRI.JK"}, syms)

	cfg.Market.UniverseURL = "http://127.0.0.1:1/list.txt"
	u = newUniverse(cfg, logger.Nop())
	assert.IsType(t, &collector.Universe{}, u)
}
