package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

type probeConfig struct {
	// TargetNad is the node address of the probed slave.
	TargetNad int `toml:"target_nad"`

	ReceiveTimeout string `toml:"receive_timeout"`

	MaxBusyRetries  int `toml:"max_busy_retries"`
	MaxPendingWaits int `toml:"max_pending_waits"`

	receiveTimeout time.Duration
}

func defaultProbeConfig() probeConfig {
	return probeConfig{
		TargetNad:      0x7F,
		receiveTimeout: 2 * time.Second,
	}
}

func loadProbeConfig(path string) (probeConfig, error) {
	cfg := defaultProbeConfig()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return probeConfig{}, fmt.Errorf("load probe config: %w", err)
	}

	if meta.IsDefined("receive_timeout") {
		d, err := time.ParseDuration(cfg.ReceiveTimeout)
		if err != nil {
			return probeConfig{}, fmt.Errorf("parse receive_timeout: %w", err)
		}
		cfg.receiveTimeout = d
	}

	return cfg, nil
}
