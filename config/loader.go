package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// Defaults returns the built-in configuration. A config file and CLI flags
// layer on top of it.
func Defaults() AppConfig {
	return AppConfig{
		Engine: EngineConfig{
			Version:         "2.2.0",
			Router:          "default",
			MemoryMB:        2048,
			Port:            8080,
			SecurePort:      8081,
			WaitAttempts:    20,
			WaitIntervalSec: 5,
		},
		Connection: ConnectionConfig{
			Hostname:   "localhost",
			Port:       8080,
			Router:     "default",
			TimeoutSec: 60,
		},
	}
}

// LoadAppConfig loads and validates the application configuration from otp.yml.
// A missing file is not an error: the defaults stand on their own so the CLI
// can run entirely from flags.
func LoadAppConfig() error {
	cfg := Defaults()
	paths := []string{"otp.yml", "./config/otp.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	v := validator.New()
	if err := v.Struct(cfg.Engine); err != nil {
		return err
	}
	if err := v.Struct(cfg.Connection); err != nil {
		return err
	}
	Config = cfg
	if Config.Engine.Router == "" {
		Config.Engine.Router = "default"
	}
	if Config.Connection.Router == "" {
		Config.Connection.Router = "default"
	}
	if Config.Connection.Port == 0 {
		Config.Connection.Port = Config.Engine.Port
	}
	return nil
}

// ParseOTPVersion splits an OTP release string like "2.2.0" or "1.5" into
// major and minor components.
func ParseOTPVersion(v string) (major, minor int, err error) {
	parts := strings.Split(strings.TrimSpace(v), ".")
	if len(parts) < 2 {
		if len(parts) == 1 && parts[0] != "" {
			if major, err = strconv.Atoi(parts[0]); err == nil {
				return major, 0, nil
			}
		}
		return 0, 0, fmt.Errorf("invalid OTP version %q", v)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid OTP version %q", v)
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid OTP version %q", v)
	}
	return major, minor, nil
}
