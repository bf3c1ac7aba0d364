package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nzai/divdash/constants"
	"github.com/nzai/divdash/quotes"
)

// Config dashboard config
type Config struct {
	Ticker   string    `toml:"ticker"`
	Tickers  []string  `toml:"tickers"`
	Source   string    `toml:"source"`
	Store    string    `toml:"store"`
	Listen   string    `toml:"listen"`
	Renderer string    `toml:"renderer"`
	Log      LogConfig `toml:"log"`
	Nsq      NsqConfig `toml:"nsq"`
}

// LogConfig logger config, empty path logs to stderr
type LogConfig struct {
	Level      string `toml:"level"`
	Path       string `toml:"path"`
	MaxSize    int    `toml:"max_size"` // megabytes
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"` // days
}

// NsqConfig new dividend notifier config, empty broker disables nsq
type NsqConfig struct {
	Broker  string `toml:"broker"`
	Topic   string `toml:"topic"`
	TLSCert string `toml:"tls_cert"`
	TLSKey  string `toml:"tls_key"`
}

// Default config used when no file is given
func Default() *Config {
	c := new(Config)
	c.Valid() // defaults always valid
	return c
}

// Valid fill defaults and validate config
func (s *Config) Valid() error {
	if strings.TrimSpace(s.Ticker) == "" {
		s.Ticker = constants.DefaultTicker
	}

	ticker, err := quotes.NormalizeTicker(s.Ticker)
	if err != nil {
		return fmt.Errorf("ticker %q invalid", s.Ticker)
	}
	s.Ticker = ticker

	for index, t := range s.Tickers {
		ticker, err = quotes.NormalizeTicker(t)
		if err != nil {
			return fmt.Errorf("tickers[%d] %q invalid", index, t)
		}
		s.Tickers[index] = ticker
	}

	if strings.TrimSpace(s.Source) == "" {
		s.Source = "yahoo"
	}

	if strings.TrimSpace(s.Store) == "" {
		s.Store = "none"
	}

	if strings.TrimSpace(s.Listen) == "" {
		s.Listen = constants.DefaultListen
	}

	if strings.TrimSpace(s.Renderer) == "" {
		s.Renderer = constants.DefaultRenderer
	}

	if strings.TrimSpace(s.Log.Level) == "" {
		s.Log.Level = "info"
	}

	if s.Log.MaxSize <= 0 {
		s.Log.MaxSize = 100
	}

	if s.Nsq.Broker != "" && strings.TrimSpace(s.Nsq.Topic) == "" {
		return fmt.Errorf("nsq.topic undefined")
	}

	return nil
}

// Parse parse config from file
func Parse(filePath string) (*Config, error) {
	c := new(Config)
	_, err := toml.DecodeFile(filePath, c)
	if err != nil {
		return nil, err
	}

	return c, c.Valid()
}
