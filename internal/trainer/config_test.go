package trainer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFileMissingFileDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	agentCfg := cfg.AgentConfig()
	assert.Equal(t, 0.5, agentCfg.Alpha)
	assert.Equal(t, 0.9, agentCfg.Gamma)
	assert.Equal(t, 1.0, agentCfg.Epsilon)
	assert.Equal(t, 0.995, agentCfg.Decay)
	assert.Empty(t, cfg.ListenAddr())
}

func TestLoadFileFullConfig(t *testing.T) {
	path := writeConfig(t, `
agent {
  alpha   = 0.3
  gamma   = 0.8
  epsilon = 0.9
  decay   = 0.99
}

training {
  rounds         = 250
  seed           = 7
  delay_ms       = 20
  progress_every = 25
}

monitor {
  listen = ":9099"
}
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	agentCfg := cfg.AgentConfig()
	assert.Equal(t, 0.3, agentCfg.Alpha)
	assert.Equal(t, 0.8, agentCfg.Gamma)
	assert.Equal(t, 0.9, agentCfg.Epsilon)
	assert.Equal(t, 0.99, agentCfg.Decay)

	session := cfg.SessionConfig(Config{})
	assert.Equal(t, 250, session.Rounds)
	assert.Equal(t, int64(7), session.Seed)
	assert.Equal(t, 20*time.Millisecond, session.Delay)
	assert.Equal(t, 25, session.ProgressEvery)

	assert.Equal(t, ":9099", cfg.ListenAddr())
}

func TestLoadFileZeroGammaIsPreserved(t *testing.T) {
	path := writeConfig(t, `
agent {
  gamma = 0
}
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.AgentConfig().Gamma)
	assert.Equal(t, 0.5, cfg.AgentConfig().Alpha, "unset values still default")
}

func TestSessionConfigFlagsWinOverFile(t *testing.T) {
	path := writeConfig(t, `
training {
  rounds = 100
  seed   = 5
}
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	session := cfg.SessionConfig(Config{Rounds: 9999})
	assert.Equal(t, 9999, session.Rounds, "flag-provided rounds wins")
	assert.Equal(t, int64(5), session.Seed, "file fills in unset seed")
}

func TestLoadFileInvalidHCL(t *testing.T) {
	path := writeConfig(t, `training { rounds = `)
	_, err := LoadFile(path)
	assert.Error(t, err)
}
