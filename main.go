package main

import (
	"fmt"
	"os"

	"acordos/debt-parser/cmd/agreement"
	"acordos/debt-parser/cmd/batch"
	"acordos/debt-parser/cmd/parse"
	"acordos/debt-parser/cmd/profile"
	"acordos/debt-parser/cmd/root"
	"acordos/debt-parser/cmd/simulate"
	"acordos/debt-parser/cmd/xpath"
	"acordos/debt-parser/internal/config"
	"acordos/debt-parser/internal/logging"
)

func init() {
	// 1. Bootstrap logger honoring the env level until the config is loaded
	root.Log = logging.NewLogrusAdapter(config.GetEnv(config.EnvPrefix+"_LOG_LEVEL", "info"), "text")

	// 2. Initialize root command flags
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(simulate.Cmd)
	root.Cmd.AddCommand(agreement.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(profile.Cmd)
	root.Cmd.AddCommand(xpath.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
