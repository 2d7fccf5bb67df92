package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lumenhq/lumen-go/config"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Lumen client configuration",
	Long: `config — Manage Lumen client configuration.

Configuration sources (in order of precedence):
1. Environment variables (LUMEN_* prefix)
2. Project config (./lumen.toml, searched upward)
3. User config (~/.lumen/config.toml)
4. System config (/etc/lumen/config.toml)
5. Default values

Examples:
  lumen config show                              # Show current configuration
  lumen config show --format json                # Show configuration as JSON
  lumen config get tenant.base_url               # Get one config value
  lumen config set tenant.base_url https://...   # Persist one config value
  lumen config validate                          # Validate current configuration`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the merged Lumen configuration from all sources",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a configuration value using dot notation (e.g., tenant.base_url, batch.max_size)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration value to the user config",
	Long:  "Write a configuration value into ~/.lumen/config.toml, taking a rotating backup first",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runConfigValidate,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configSetCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// API keys never hit the terminal
	display := *cfg
	if display.Tenant.APIKey != "" {
		display.Tenant.APIKey = "********"
	}

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(display, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Println(string(data))

	case "yaml":
		data, err := yaml.Marshal(display)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Printf("# Lumen client configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(display)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Printf("# Lumen client configuration\n%s", string(data))

	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	v := config.GetViper()
	key := args[0]
	if !v.IsSet(key) {
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	fmt.Println(v.Get(key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if err := config.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	pterm.Success.Printf("Set %s in %s\n", key, config.UserConfigPath())
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		pterm.Error.Printf("Configuration invalid: %v\n", err)
		os.Exit(1)
	}
	pterm.Success.Println("Configuration is valid")
	return nil
}
