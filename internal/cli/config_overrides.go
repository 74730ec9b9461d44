package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flags to the config keys they override.
var flagKeys = map[string]string{
	"log-level":     "log.level",
	"log-file-path": "log.dir",
	"listen":        "http_addr",
	"style":         "terminal.style",
	"width":         "terminal.width",
}

// bindConfigFlags binds the flags cmd defines so that explicitly set flags
// take precedence over config file and environment values.
func bindConfigFlags(cmd *cobra.Command, v *viper.Viper) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	// --no-browser inverts open_browser, so it cannot be bound directly.
	if f := cmd.Flags().Lookup("no-browser"); f != nil && f.Changed {
		v.Set("open_browser", false)
	}
	return nil
}
