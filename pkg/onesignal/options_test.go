package onesignal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onesignal/pkg/onesignal"
)

func TestClientOptions(t *testing.T) {
	t.Parallel()

	base := onesignal.NewClientOptions("app", "key")
	custom := base.WithBaseURL("https://proxy.example/api/v1/").WithDefaultSegment("Active Users")

	assert.Equal(t, onesignal.DefaultBaseURL, base.BaseURL())
	assert.Empty(t, base.DefaultSegment())

	assert.Equal(t, "https://proxy.example/api/v1", custom.BaseURL())
	assert.Equal(t, "Active Users", custom.DefaultSegment())
	assert.Equal(t, "app", custom.AppID())
	assert.Equal(t, "key", custom.RESTAPIKey())

	assert.Equal(t, onesignal.DefaultBaseURL, custom.WithBaseURL("").BaseURL())
	assert.NoError(t, custom.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("ONESIGNAL_APP_ID", "env-app")
	t.Setenv("ONESIGNAL_REST_API_KEY", "env-key")
	t.Setenv("ONESIGNAL_DEFAULT_SEGMENT", "Subscribed Users")
	t.Setenv("ONESIGNAL_TIMEOUT", "5s")
	t.Setenv("ONESIGNAL_DEBUG", "true")

	cfg, err := onesignal.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "env-app", cfg.AppID)
	assert.Equal(t, "env-key", cfg.RESTAPIKey)
	assert.Equal(t, onesignal.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Debug)

	opts := cfg.ClientOptions()
	assert.Equal(t, "Subscribed Users", opts.DefaultSegment())

	client, err := onesignal.NewFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "env-app", client.Options().AppID())
}

func TestLoadConfig_Missing(t *testing.T) {
	t.Setenv("ONESIGNAL_APP_ID", "")
	t.Setenv("ONESIGNAL_REST_API_KEY", "")

	_, err := onesignal.LoadConfig()
	assert.ErrorIs(t, err, onesignal.ErrInvalidConfig)
}
