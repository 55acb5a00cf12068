// Package config defines the file based configuration of the trispace tool.
package config

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/trispace/logging"
	"go.viam.com/trispace/octree"
)

// A Config describes how triangles are indexed and verified.
type Config struct {
	ConfigFilePath string `json:"-"`

	OctreeLeafSize int    `json:"octree_leaf_size"`
	OctreeMaxDepth int    `json:"octree_max_depth"`
	Workers        int    `json:"workers"`
	BruteForce     bool   `json:"brute_force"`
	LogLevel       string `json:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		OctreeLeafSize: octree.OptimalLeafSize,
		OctreeMaxDepth: octree.MaxDepth,
		LogLevel:       "info",
	}
}

// Validate returns every problem with the config. path names the source in error messages.
func (c *Config) Validate(path string) error {
	var err error
	if c.OctreeLeafSize < 1 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path,
			errors.Errorf("octree_leaf_size must be at least 1, got %d", c.OctreeLeafSize)))
	}
	if c.OctreeMaxDepth < 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path,
			errors.Errorf("octree_max_depth cannot be negative, got %d", c.OctreeMaxDepth)))
	}
	if c.Workers < 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path,
			errors.Errorf("workers cannot be negative, got %d", c.Workers)))
	}
	if c.LogLevel == "" {
		err = multierr.Append(err, goutils.NewConfigValidationFieldRequiredError(path, "log_level"))
	} else if _, levelErr := logging.LevelFromString(c.LogLevel); levelErr != nil {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, levelErr))
	}
	return err
}

// Level returns the parsed log level. It assumes the config has been validated.
func (c *Config) Level() logging.Level {
	level, err := logging.LevelFromString(c.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}

// OctreeConfig converts the config into the octree's build parameters.
func (c *Config) OctreeConfig() *octree.Config {
	return &octree.Config{
		LeafSize: c.OctreeLeafSize,
		MaxDepth: c.OctreeMaxDepth,
		Workers:  c.Workers,
	}
}
