// Package profile handles the heuristic profile commands
package profile

import (
	"fmt"
	"io"

	"acordos/debt-parser/cmd/root"
	"acordos/debt-parser/internal/fileutils"
	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var force bool

// Cmd represents the profile command
var Cmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect or create the heuristic profile",
	Long: `The heuristic profile lists the labels and keywords the PDF heuristics
look for and the element names the XML search uses. Lists in a profile file
replace the built-in ones.`,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active profile as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		if err := Show(root.MustContainer().GetProfile(), cmd.OutOrStdout()); err != nil {
			root.Log.Fatalf("Error printing profile: %v", err)
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in profile to a file for editing",
	Run: func(cmd *cobra.Command, args []string) {
		out := root.SharedFlags.Output
		if out == "" {
			out = "profile.yaml"
		}
		if err := Init(out, force, root.Log); err != nil {
			root.Log.Fatalf("Error writing profile: %v", err)
		}
	},
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	Cmd.AddCommand(showCmd, initCmd)
}

// Show writes profile as YAML.
func Show(profile *store.Profile, w io.Writer) error {
	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("error marshaling profile: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Init saves the built-in profile to path. An existing file is kept unless
// force is set.
func Init(path string, force bool, logger logging.Logger) error {
	if fileutils.FileExists(path) && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	return store.NewProfileStore(path, logger).Save(store.DefaultProfile())
}
