package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/lumenhq/lumen-go/config"
	"github.com/lumenhq/lumen-go/logger"
)

func TestSetupLoggerUsesLogConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.JSON = true
	cfg.Log.Theme = "gruvbox"
	cfg.Log.Verbosity = 2

	require.NoError(t, setupLogger(cfg, 0))
	assert.True(t, logger.JSONOutput)
	assert.True(t, logger.Logger.Desugar().Core().Enabled(zapcore.DebugLevel))

	// An explicit -v flag beats the configured verbosity
	require.NoError(t, setupLogger(cfg, 1))
	assert.True(t, logger.Logger.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Logger.Desugar().Core().Enabled(zapcore.DebugLevel))

	// Without a config: plain console output, warnings only
	require.NoError(t, setupLogger(nil, 0))
	assert.False(t, logger.JSONOutput)
	assert.False(t, logger.Logger.Desugar().Core().Enabled(zapcore.InfoLevel))
}
