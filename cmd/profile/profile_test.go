package profile

import (
	"bytes"
	"path/filepath"
	"testing"

	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCommandTree(t *testing.T) {
	assert.Equal(t, "profile", Cmd.Use)
	names := []string{}
	for _, c := range Cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"show", "init"}, names)
}

func TestShow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Show(store.DefaultProfile(), &buf))

	var back store.Profile
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, store.DefaultProfile().NameLabels, back.NameLabels)
	assert.Contains(t, buf.String(), "condominium_keywords:")
}

func TestInit(t *testing.T) {
	log := logging.NewMockLogger()
	path := filepath.Join(t.TempDir(), "conf", "profile.yaml")

	require.NoError(t, Init(path, false, log))
	assert.True(t, log.HasEntry("INFO", "Saved heuristic profile"))

	err := Init(path, false, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Init(path, true, log))

	loaded, err := store.NewProfileStore(path, log).Load()
	require.NoError(t, err)
	assert.Equal(t, store.DefaultProfile(), loaded)
}
