// Command yamatoctl drives and monitors Yamato air conditioners over IR.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.tigermatt.uk/yamato/internal/config"
)

var configPath string

func main() {
	cmd := &cobra.Command{
		Use:          "yamatoctl",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", configPath, "YAML config file")

	cmd.AddCommand(propsCommand())
	cmd.AddCommand(labelsCommand())
	cmd.AddCommand(setCommand())
	cmd.AddCommand(encodeCommand())
	cmd.AddCommand(sniffCommand())
	cmd.AddCommand(&cobra.Command{
		Use:  "dump FILE",
		Args: cobra.ExactArgs(1),
		RunE: dump,
	})

	if err := cmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}

// loadConfig reads --config if given. Without a file every setting takes
// its default.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	config.Normalize(cfg)

	return cfg, nil
}

func traceLogger(cfg *config.Config) *log.Logger {
	if !cfg.Log.Trace {
		return nil
	}
	return log.New(os.Stderr, "yamato: ", log.LstdFlags|log.Lmicroseconds)
}
