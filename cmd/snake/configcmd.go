package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the config file, the speed preset and the
global flags have been applied. The output is valid YAML and can be saved as
~/.snake/config.yaml.`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("Error: %v", err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fatal("Error encoding config: %v", err)
	}
	fmt.Print(string(out))
}
