package root_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"acordos/debt-parser/cmd/root"
	"acordos/debt-parser/internal/common"
	"acordos/debt-parser/internal/config"
	"acordos/debt-parser/internal/container"
	"acordos/debt-parser/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var initOnce sync.Once

func initRoot() {
	initOnce.Do(root.Init)
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "debt-parser", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "debt statements")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	initRoot()

	for name, short := range map[string]string{"input": "i", "output": "o", "validate": "v"} {
		f := root.Cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, short, f.Shorthand)
	}
	for _, name := range []string{"config", "log-level", "log-format", "csv-delimiter", "pdf-backend", "profile"} {
		assert.NotNil(t, root.Cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCommand_Run(t *testing.T) {
	assert.NotPanics(t, func() {
		root.Cmd.Run(&cobra.Command{}, []string{})
	})
}

func TestSetup(t *testing.T) {
	initRoot()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfgFile := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("batch:\n  workers: 3\nrender:\n  city: Santos\n"), 0600))

	require.NoError(t, root.Cmd.ParseFlags([]string{"--config", cfgFile, "--csv-delimiter", "|", "--log-level", "debug"}))
	t.Cleanup(func() {
		root.Overrides = root.ConfigFlags{}
		for _, name := range []string{"config", "csv-delimiter", "log-level"} {
			root.Cmd.PersistentFlags().Lookup(name).Changed = false
		}
		common.SetDelimiter(common.DefaultDelimiter)
	})

	c, err := root.Setup(root.Cmd)
	require.NoError(t, err)
	cfg := c.GetConfig()
	assert.Equal(t, 3, cfg.Batch.Workers)
	assert.Equal(t, "Santos", cfg.Render.City)
	assert.Equal(t, "|", cfg.CSV.Delimiter)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, '|', common.Delimiter())
}

func TestSetup_BadDelimiter(t *testing.T) {
	initRoot()
	require.NoError(t, root.Cmd.ParseFlags([]string{"--csv-delimiter", "ab"}))
	t.Cleanup(func() {
		root.Overrides = root.ConfigFlags{}
		root.Cmd.PersistentFlags().Lookup("csv-delimiter").Changed = false
	})

	_, err := root.Setup(root.Cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single character")
}

func TestContainerAccessors(t *testing.T) {
	log := logging.NewMockLogger()
	c, err := container.NewContainer(config.Default(), container.WithLogger(log))
	require.NoError(t, err)

	root.SetContainer(c)
	t.Cleanup(func() { root.SetContainer(nil) })

	assert.Same(t, c, root.GetContainer())
	assert.Same(t, c, root.MustContainer())
	assert.Equal(t, log, root.Log)

	root.SharedFlags.Input = ""
	_, err = root.RequireInput()
	assert.Error(t, err)
	root.SharedFlags.Input = "boleto.pdf"
	t.Cleanup(func() { root.SharedFlags.Input = "" })
	in, err := root.RequireInput()
	require.NoError(t, err)
	assert.Equal(t, "boleto.pdf", in)
}
