package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// runConfig is the resolved runtime configuration.
type runConfig struct {
	Image    string
	Width    int
	Height   int
	FPS      int
	NodeName string
}

func defaultConfig() runConfig {
	return runConfig{Width: 640, Height: 480, FPS: 30, NodeName: "vcam"}
}

// fileConfig is the config.toml key mapping.
type fileConfig struct {
	Image    string `toml:"image"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	FPS      int    `toml:"fps"`
	NodeName string `toml:"node_name"`
}

// loadConfig overlays the file at path onto cfg. Only keys present in the
// file override.
func loadConfig(path string, cfg runConfig) (runConfig, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load config: %w", err)
	}
	if meta.IsDefined("image") {
		cfg.Image = strings.TrimSpace(raw.Image)
	}
	if meta.IsDefined("width") {
		cfg.Width = raw.Width
	}
	if meta.IsDefined("height") {
		cfg.Height = raw.Height
	}
	if meta.IsDefined("fps") {
		cfg.FPS = raw.FPS
	}
	if meta.IsDefined("node_name") {
		cfg.NodeName = strings.TrimSpace(raw.NodeName)
	}
	return cfg, cfg.validate()
}

func (c runConfig) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("load config: invalid frame rectangle %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("load config: invalid frame rate %d", c.FPS)
	}
	return nil
}
