package commands

import (
	"github.com/lumenhq/lumen-go/config"
	"github.com/lumenhq/lumen-go/logger"
)

// SetupLogger initializes the global logger from the merged configuration
// and the -v flag count. The flag wins over log.verbosity when given.
// A config that cannot be loaded falls back to plain console defaults, so
// commands that need no config (version, config set) still run.
func SetupLogger(verbosity int) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = nil
	}
	return setupLogger(cfg, verbosity)
}

func setupLogger(cfg *config.Config, verbosity int) error {
	jsonOutput := false
	if cfg != nil {
		jsonOutput = cfg.Log.JSON
		logger.SetTheme(cfg.Log.Theme)
		if verbosity == 0 {
			verbosity = cfg.Log.Verbosity
		}
	}
	return logger.InitializeWithLevel(jsonOutput, logger.VerbosityToLevel(verbosity))
}
