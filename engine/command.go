package engine

import (
	"fmt"
	"path/filepath"

	"github.com/kimnewzealand/opentripplanner/config"
)

// javaArgs returns the JVM-side arguments shared by build and server launches.
func javaArgs(cfg config.EngineConfig) []string {
	args := []string{fmt.Sprintf("-Xmx%dM", cfg.MemoryMB)}
	if cfg.Flag64Bit {
		args = append(args, "-d64")
	}
	return append(args, "-jar", cfg.JarPath)
}

// RouterDir returns the directory holding one router's inputs and graph,
// <dataDir>/graphs/<router>.
func RouterDir(cfg config.EngineConfig) string {
	return filepath.Join(cfg.DataDir, "graphs", cfg.Router)
}

// GraphBuildArgs assembles the argument list for a graph build. OTP 2.x needs
// --save to persist the graph; OTP 1.x writes Graph.obj unconditionally.
func GraphBuildArgs(cfg config.EngineConfig, otpMajor int) []string {
	args := append(javaArgs(cfg), "--build")
	if otpMajor >= 2 {
		args = append(args, "--save")
	}
	return append(args, RouterDir(cfg))
}

// ServerArgs assembles the argument list for launching the engine as a
// server. The two OTP generations take different flags for the same intent.
func ServerArgs(cfg config.EngineConfig, otpMajor int) []string {
	args := javaArgs(cfg)
	if otpMajor >= 2 {
		args = append(args, "--load", RouterDir(cfg))
	} else {
		args = append(args,
			"--router", cfg.Router,
			"--graphs", filepath.Join(cfg.DataDir, "graphs"),
			"--server",
			"--basePath", cfg.DataDir,
		)
		if cfg.Analyst {
			args = append(args, "--analyst")
		}
	}
	args = append(args,
		"--port", fmt.Sprintf("%d", cfg.Port),
		"--securePort", fmt.Sprintf("%d", cfg.SecurePort),
	)
	return args
}
