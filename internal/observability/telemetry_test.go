package observability

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/gamewatchr/internal/config"
	"github.com/riskibarqy/gamewatchr/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_NothingEnabled(t *testing.T) {
	cfg := config.Config{ServiceName: "gamewatchr-api", AppEnv: config.EnvDev, UptraceEnabled: true}

	telemetry, err := Start(cfg, logging.NewNop())
	require.NoError(t, err)
	assert.Empty(t, telemetry.Active())
	require.NoError(t, telemetry.Shutdown(context.Background()))
}

func TestStart_PprofLifecycle(t *testing.T) {
	cfg := config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}

	telemetry, err := Start(cfg, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"pprof"}, telemetry.Active())

	require.NoError(t, telemetry.Shutdown(context.Background()))
	require.NoError(t, telemetry.Shutdown(context.Background()))
}

func TestStart_PprofAddrInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	_, err = Start(config.Config{PprofEnabled: true, PprofAddr: busy.Addr().String()}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start pprof")
}

func TestPprofHandler_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfilingTags(t *testing.T) {
	tags := profilingTags(config.Config{ServiceName: "gamewatchr-api", AppEnv: config.EnvProd})
	assert.Equal(t, map[string]string{"service": "gamewatchr-api", "env": config.EnvProd}, tags)

	tags = profilingTags(config.Config{ServiceName: "gamewatchr-api", ServiceVersion: "1.4.0"})
	assert.Equal(t, "1.4.0", tags["version"])
}

func TestShutdown_NilTelemetry(t *testing.T) {
	var telemetry *Telemetry
	assert.NoError(t, telemetry.Shutdown(context.Background()))
	assert.Nil(t, telemetry.Active())
}
