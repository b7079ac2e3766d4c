package trainer

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjackrl/internal/agent"
)

// FileConfig is the HCL representation of a training setup. All blocks and
// attributes are optional; anything unset falls back to defaults.
//
//	agent {
//	  alpha   = 0.5
//	  gamma   = 0.9
//	  epsilon = 1.0
//	  decay   = 0.995
//	}
//
//	training {
//	  rounds         = 5000
//	  seed           = 42
//	  delay_ms       = 0
//	  progress_every = 100
//	}
//
//	monitor {
//	  listen = ":8089"
//	}
type FileConfig struct {
	Agent    *AgentBlock    `hcl:"agent,block"`
	Training *TrainingBlock `hcl:"training,block"`
	Monitor  *MonitorBlock  `hcl:"monitor,block"`
}

// AgentBlock configures the learning parameters. Pointer fields distinguish
// "unset" from legitimate zero values such as gamma = 0.
type AgentBlock struct {
	Alpha   *float64 `hcl:"alpha,optional"`
	Gamma   *float64 `hcl:"gamma,optional"`
	Epsilon *float64 `hcl:"epsilon,optional"`
	Decay   *float64 `hcl:"decay,optional"`
}

// TrainingBlock configures the session loop.
type TrainingBlock struct {
	Rounds        *int   `hcl:"rounds,optional"`
	Seed          *int64 `hcl:"seed,optional"`
	DelayMS       *int   `hcl:"delay_ms,optional"`
	ProgressEvery *int   `hcl:"progress_every,optional"`
}

// MonitorBlock configures the live progress server.
type MonitorBlock struct {
	Listen string `hcl:"listen,optional"`
}

// LoadFile reads an HCL config file. A missing file is not an error; it
// yields an empty config so everything defaults.
func LoadFile(path string) (*FileConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &FileConfig{}, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config FileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return &config, nil
}

// AgentConfig returns the learning parameters with file values applied over
// the defaults.
func (f *FileConfig) AgentConfig() agent.Config {
	cfg := agent.DefaultConfig()
	if f.Agent == nil {
		return cfg
	}
	if f.Agent.Alpha != nil {
		cfg.Alpha = *f.Agent.Alpha
	}
	if f.Agent.Gamma != nil {
		cfg.Gamma = *f.Agent.Gamma
	}
	if f.Agent.Epsilon != nil {
		cfg.Epsilon = *f.Agent.Epsilon
	}
	if f.Agent.Decay != nil {
		cfg.Decay = *f.Agent.Decay
	}
	return cfg
}

// SessionConfig returns the session parameters with file values applied over
// the given base config. CLI flags populate the base, so file values only
// fill in what flags left at zero.
func (f *FileConfig) SessionConfig(base Config) Config {
	if f.Training == nil {
		return base
	}
	if base.Rounds == 0 && f.Training.Rounds != nil {
		base.Rounds = *f.Training.Rounds
	}
	if base.Seed == 0 && f.Training.Seed != nil {
		base.Seed = *f.Training.Seed
	}
	if base.Delay == 0 && f.Training.DelayMS != nil {
		base.Delay = time.Duration(*f.Training.DelayMS) * time.Millisecond
	}
	if base.ProgressEvery == 0 && f.Training.ProgressEvery != nil {
		base.ProgressEvery = *f.Training.ProgressEvery
	}
	return base
}

// ListenAddr returns the monitor listen address, empty when disabled.
func (f *FileConfig) ListenAddr() string {
	if f.Monitor == nil {
		return ""
	}
	return f.Monitor.Listen
}
