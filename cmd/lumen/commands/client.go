package commands

import (
	"fmt"

	"github.com/lumenhq/lumen-go/client"
	"github.com/lumenhq/lumen-go/config"
	"github.com/lumenhq/lumen-go/logger"
)

// newClient builds a tenant client from the merged configuration
func newClient() (*client.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration invalid (run 'lumen config validate'): %w", err)
	}

	clientCfg := cfg.ClientConfig()
	clientCfg.Logger = logger.Logger

	c, err := client.NewClient(clientCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tenant client: %w", err)
	}
	return c, cfg, nil
}
