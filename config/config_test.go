package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoadAppConfig_Missing(t *testing.T) {
	origConfig := Config
	defer func() { Config = origConfig }()
	chdir(t, t.TempDir())

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("a missing otp.yml should fall back to defaults, got: %v", err)
	}
	if Config.Engine.Port != 8080 {
		t.Errorf("default engine port = %d, want 8080", Config.Engine.Port)
	}
	if Config.Connection.Hostname != "localhost" || Config.Connection.Router != "default" {
		t.Errorf("unexpected connection defaults: %+v", Config.Connection)
	}
}

func TestLoadAppConfig_File(t *testing.T) {
	origConfig := Config
	defer func() { Config = origConfig }()
	dir := t.TempDir()
	yml := `
engine:
  jarPath: /opt/otp/otp-2.2.0-shaded.jar
  dataDir: /data/otp
  version: "2.2.0"
  memoryMB: 4096
  port: 9090
connection:
  hostname: otp.example.com
  ssl: true
`
	if err := os.WriteFile(filepath.Join(dir, "otp.yml"), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if Config.Engine.MemoryMB != 4096 || Config.Engine.Port != 9090 {
		t.Errorf("engine overrides not applied: %+v", Config.Engine)
	}
	if !Config.Connection.SSL || Config.Connection.Hostname != "otp.example.com" {
		t.Errorf("connection overrides not applied: %+v", Config.Connection)
	}
	// Connection port defaults to the engine's when unset.
	if Config.Connection.Port != 9090 {
		t.Errorf("connection port = %d, want 9090", Config.Connection.Port)
	}
	// File values layer over defaults without erasing them.
	if Config.Engine.WaitAttempts != 20 {
		t.Errorf("waitAttempts default lost: %d", Config.Engine.WaitAttempts)
	}
}

func TestLoadAppConfig_InvalidYAML(t *testing.T) {
	origConfig := Config
	defer func() { Config = origConfig }()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "otp.yml"), []byte("engine: [[["), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	if err := LoadAppConfig(); err == nil {
		t.Error("invalid YAML should return an error")
	}
}

func TestLoadAppConfig_Invalid(t *testing.T) {
	origConfig := Config
	defer func() { Config = origConfig }()
	dir := t.TempDir()
	yml := `
engine:
  memoryMB: -5
`
	if err := os.WriteFile(filepath.Join(dir, "otp.yml"), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	if err := LoadAppConfig(); err == nil {
		t.Error("negative memoryMB should fail validation")
	}
}

func TestParseOTPVersion(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		major, minor int
		wantErr      bool
	}{
		{name: "three components", input: "2.2.0", major: 2, minor: 2},
		{name: "two components", input: "1.5", major: 1, minor: 5},
		{name: "bare major", input: "2", major: 2, minor: 0},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			major, minor, err := ParseOTPVersion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOTPVersion(%q): %v", tt.input, err)
			}
			if major != tt.major || minor != tt.minor {
				t.Errorf("ParseOTPVersion(%q) = %d.%d, want %d.%d", tt.input, major, minor, tt.major, tt.minor)
			}
		})
	}
}
