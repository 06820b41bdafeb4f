package app

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/install"
	"github.com/gonewx/giftbox/pkg/reward"
)

func TestNewApp(t *testing.T) {
	a, err := NewApp(Config{
		Amount: decimal.NewFromInt(50),
		Text:   reward.DisplayText{Currency: "$"},
	})
	require.NoError(t, err)
	defer a.Shutdown()

	w, h := a.Layout(1920, 1080)
	assert.Equal(t, config.ScreenWidth, w)
	assert.Equal(t, config.ScreenHeight, h)
	assert.NotNil(t, a.InstallStore())
	assert.NotNil(t, a.InstallEvents())
}

func TestNewApp_UsesInjectedInstallChannels(t *testing.T) {
	store := install.NewStore()
	events := install.NewEvents()
	a, err := NewApp(Config{
		Amount: decimal.NewFromInt(5),
		Store:  store,
		Events: events,
	})
	require.NoError(t, err)
	defer a.Shutdown()

	assert.Same(t, store, a.InstallStore())
	assert.Same(t, events, a.InstallEvents())
	// 横幅已订阅两类通知
	assert.Equal(t, 2, events.ListenerCount())
}

func TestNewApp_InvalidAmount(t *testing.T) {
	_, err := NewApp(Config{Amount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, reward.ErrInvalidAmount)
}

func TestShutdownReleasesScene(t *testing.T) {
	events := install.NewEvents()
	a, err := NewApp(Config{Amount: decimal.NewFromInt(1), Events: events})
	require.NoError(t, err)

	a.Shutdown()
	assert.Equal(t, 0, events.ListenerCount())
}
