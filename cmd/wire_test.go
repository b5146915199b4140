package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/bnema/lesson-kiosk/internal/application"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuietConsoleSilencesBackgroundLogs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("KIOSK_LOG_LEVEL", "debug")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)
	t.Setenv("KIOSK_BACKEND_BASE_URL", server.URL)

	console := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetErr(console)

	a := &app{viper: viper.New()}
	require.NoError(t, a.load(cmd))
	t.Cleanup(func() { _ = a.close() })

	err := application.NewTimeSync(a.client, a.clock, a.logger).Sync(context.Background())
	require.Error(t, err)
	assert.Contains(t, console.String(), "time sync failed")

	console.Reset()
	require.NoError(t, a.quietConsole(console))

	err = application.NewTimeSync(a.client, a.clock, a.logger).Sync(context.Background())
	require.Error(t, err)
	assert.Empty(t, console.String())
}
