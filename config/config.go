// Package config decodes and validates the gql.yaml configuration file the
// generate and validate subcommands read their source directories and
// output paths from (spec.md §6.3; the gql_cli config/config_action shape
// under _examples/original_source/cpp/gql/src/gql_cli).
package config

import (
	"fmt"
	"io/ioutil"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// Config is the decoded shape of gql.yaml.
type Config struct {
	ServerDir        string `yaml:"serverDir" validate:"required"`
	ClientDir        string `yaml:"clientDir" validate:"required"`
	OutputServerFile string `yaml:"outputServerFile" validate:"required"`
	OutputClientFile string `yaml:"outputClientFile" validate:"required"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gqlc: reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("gqlc: parsing config %s: %w", path, err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("gqlc: invalid config %s: %w", path, err)
	}

	return &cfg, nil
}
