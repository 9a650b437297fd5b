package solver

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config tunes the solver boundary: the LP feasibility tolerance and the
// branch-and-bound node budget for hitting-set computations.
type Config struct {
	// Tolerance is the absolute drift from 1 allowed in the sum of the
	// solver's read (or write) strategy weights before Strategy rescales
	// them to sum to 1.
	Tolerance float64 `json:"tolerance"`

	// MaxBranchAndBoundNodes caps SolveMILP's search tree. Zero means use
	// the package default (maxBranchAndBoundNodes).
	MaxBranchAndBoundNodes int `json:"max_branch_and_bound_nodes"`

	// RNGSeed is stored and round-tripped through JSON only. No code in
	// the module reads it: Strategy's sampling methods take a *Rand from
	// the caller, and that Rand's seed is what governs reproducibility.
	RNGSeed uint64 `json:"rng_seed"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Tolerance:              1e-6,
		MaxBranchAndBoundNodes: maxBranchAndBoundNodes,
		RNGSeed:                0,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %v", c.Tolerance)
	}
	if c.MaxBranchAndBoundNodes < 0 {
		return fmt.Errorf("max_branch_and_bound_nodes must be non-negative, got %d", c.MaxBranchAndBoundNodes)
	}
	return nil
}

// LoadConfigFromFile loads a Config from a JSON file, defaulting any field
// the file leaves unset.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read solver config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse solver config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid solver configuration: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves the configuration to a JSON file.
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal solver config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write solver config file: %w", err)
	}

	return nil
}
