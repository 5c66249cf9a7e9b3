package config

// EngineConfig describes how to build graphs and run the local OTP process
type EngineConfig struct {
	JarPath  string `yaml:"jarPath"`
	DataDir  string `yaml:"dataDir"`
	Version  string `yaml:"version"`
	Router   string `yaml:"router"`
	MemoryMB int    `yaml:"memoryMB" validate:"gte=0"`
	Port     int    `yaml:"port" validate:"gte=0"`
	// SecurePort is passed through to the engine; OTP refuses to start when it
	// collides with Port.
	SecurePort  int  `yaml:"securePort" validate:"gte=0"`
	Analyst     bool `yaml:"analyst"`
	Flag64Bit   bool `yaml:"flag64bit"`
	OpenBrowser bool `yaml:"openBrowser"`
	// Readiness polling: attempts x interval bound the total wait.
	WaitAttempts    int `yaml:"waitAttempts" validate:"gte=0"`
	WaitIntervalSec int `yaml:"waitIntervalSec" validate:"gte=0"`
}

// ConnectionConfig addresses a running OTP instance, local or remote
type ConnectionConfig struct {
	Hostname   string `yaml:"hostname"`
	Port       int    `yaml:"port" validate:"gte=0"`
	Router     string `yaml:"router"`
	SSL        bool   `yaml:"ssl"`
	TimeoutSec int    `yaml:"timeoutSec" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Engine     EngineConfig     `yaml:"engine"`
	Connection ConnectionConfig `yaml:"connection"`
}
