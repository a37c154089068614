package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvAddr   = "WARPZONE_ADDR"
	EnvConfig = "WARPZONE_CONFIG"
	EnvWorlds = "WARPZONE_WORLDS"
	EnvDebug  = "WARPZONE_DEBUG"
)

// LoadEnv loads a dotenv file into the process environment without overriding existing variables
// A missing file is not an error
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ServerSettings are the host process settings resolved from flags and environment
type ServerSettings struct {
	Addr       string
	ConfigPath string
	WorldsPath string
	Debug      bool
}

// Overlay fills settings from the environment; explicitly set flags win
// set reports whether a flag was given on the command line
func (s *ServerSettings) Overlay(set func(flag string) bool) {
	if v := os.Getenv(EnvAddr); v != "" && !set("addr") {
		s.Addr = v
	}
	if v := os.Getenv(EnvConfig); v != "" && !set("config") {
		s.ConfigPath = v
	}
	if v := os.Getenv(EnvWorlds); v != "" && !set("worlds") {
		s.WorldsPath = v
	}
	if v := os.Getenv(EnvDebug); v != "" && !set("debug") {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Debug = b
		}
	}
}
