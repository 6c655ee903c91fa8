package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = ".minirb.yaml"

// Config holds REPL preferences, overridable via ~/.minirb.yaml:
//
//	prompt: ">> "
//	cont_prompt: ".. "
//	history: .minirb_history
//	color: false
type Config struct {
	Prompt     string `yaml:"prompt"`
	ContPrompt string `yaml:"cont_prompt"`
	History    string `yaml:"history"`
	Color      bool   `yaml:"color"`
}

func defaultConfig() Config {
	return Config{
		Prompt:     ">> ",
		ContPrompt: ".. ",
		History:    ".minirb_history",
		Color:      true,
	}
}

// loadConfig reads ~/.minirb.yaml over the defaults. A missing or
// unreadable file just means defaults; a malformed one is ignored the same
// way rather than blocking the REPL from starting.
func loadConfig() Config {
	cfg := defaultConfig()
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(filepath.Join(home, configFile))
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaultConfig()
	}
	if cfg.Prompt == "" {
		cfg.Prompt = ">> "
	}
	if cfg.ContPrompt == "" {
		cfg.ContPrompt = ".. "
	}
	if cfg.History == "" {
		cfg.History = ".minirb_history"
	}
	return cfg
}

func (c Config) historyPath() string {
	if filepath.IsAbs(c.History) {
		return c.History
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.History
	}
	return filepath.Join(home, c.History)
}
