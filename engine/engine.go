// Package engine builds routing graphs and supervises the external OTP
// process: argument assembly for the jar, launch and stop, and the bounded
// readiness poll against its HTTP endpoint.
package engine

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/browser"

	"github.com/kimnewzealand/opentripplanner/config"
	"github.com/kimnewzealand/opentripplanner/java"
)

// errorMarker is what OTP prints on build and startup failures. Its exit code
// is not reliable across releases, so the log is scanned for it as well.
const errorMarker = "ERROR"

// tailLines bounds how much of the engine log is quoted in error messages.
const tailLines = 20

// Engine drives one local OTP process for one data directory.
type Engine struct {
	cfg      config.EngineConfig
	otpMajor int
	otpMinor int
	javaPath string
	cmd      *exec.Cmd
}

// New validates the engine configuration, locates a Java runtime and checks
// it against the targeted OTP release.
func New(ctx context.Context, cfg config.EngineConfig) (*Engine, error) {
	if cfg.JarPath == "" {
		return nil, fmt.Errorf("no OTP jar configured")
	}
	if _, err := os.Stat(cfg.JarPath); err != nil {
		return nil, fmt.Errorf("OTP jar not found at %s: %w", cfg.JarPath, err)
	}
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("no data directory configured")
	}
	major, minor, err := config.ParseOTPVersion(cfg.Version)
	if err != nil {
		return nil, err
	}
	javaPath, err := java.Find()
	if err != nil {
		return nil, err
	}
	version, err := java.Check(ctx, javaPath, major, minor)
	if err != nil {
		return nil, err
	}
	log.Printf("using java %s at %s for OTP %s", version, javaPath, cfg.Version)
	return &Engine{cfg: cfg, otpMajor: major, otpMinor: minor, javaPath: javaPath}, nil
}

// LogPath returns the file the engine's output is redirected to.
func (e *Engine) LogPath() string {
	return filepath.Join(e.cfg.DataDir, "otp.log")
}

func (e *Engine) pidPath() string {
	return filepath.Join(e.cfg.DataDir, "otp.pid")
}

// GraphPath returns where the built graph lives. The file name changed case
// between OTP 1.x and 2.x.
func (e *Engine) GraphPath() string {
	name := "Graph.obj"
	if e.otpMajor >= 2 {
		name = "graph.obj"
	}
	return filepath.Join(RouterDir(e.cfg), name)
}

// BuildGraph runs the engine's graph build to completion, scanning its output
// for the error marker and verifying the graph file was produced.
func (e *Engine) BuildGraph(ctx context.Context) error {
	args := GraphBuildArgs(e.cfg, e.otpMajor)
	logFile, err := os.Create(e.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()

	log.Printf("building graph: %s %s", e.javaPath, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, e.javaPath, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	runErr := cmd.Run()

	out, readErr := os.ReadFile(e.LogPath())
	if readErr == nil && strings.Contains(string(out), errorMarker) {
		return fmt.Errorf("graph build reported errors:\n%s", logTail(string(out)))
	}
	if runErr != nil {
		return fmt.Errorf("graph build failed: %w", runErr)
	}
	if _, err := os.Stat(e.GraphPath()); err != nil {
		return fmt.Errorf("graph build finished but %s is missing", e.GraphPath())
	}
	log.Printf("graph built at %s", e.GraphPath())
	return nil
}

// Start launches the engine as a detached server process. The PID is recorded
// in the data dir so a later CLI invocation can stop it.
func (e *Engine) Start(ctx context.Context) error {
	if _, err := os.Stat(e.GraphPath()); err != nil {
		return fmt.Errorf("no graph at %s, build one first", e.GraphPath())
	}
	args := ServerArgs(e.cfg, e.otpMajor)
	logFile, err := os.Create(e.LogPath())
	if err != nil {
		return err
	}

	log.Printf("starting engine: %s %s", e.javaPath, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, e.javaPath, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	if err := cmd.Start(); err != nil {
		logFile.Close()
		return fmt.Errorf("starting engine: %w", err)
	}
	e.cmd = cmd
	if err := os.WriteFile(e.pidPath(), []byte(strconv.Itoa(cmd.Process.Pid)), 0o644); err != nil {
		log.Printf("could not record engine pid: %v", err)
	}
	// The process outlives this call; reap it in the background so a crash
	// before readiness shows up in WaitReady rather than as a zombie.
	go func() {
		defer logFile.Close()
		_ = cmd.Wait()
	}()
	return nil
}

// healthURL is the endpoint polled for readiness. Both OTP generations answer
// on /otp once the graph is loaded.
func (e *Engine) healthURL() string {
	return fmt.Sprintf("http://localhost:%d/otp", e.cfg.Port)
}

// WaitReady polls the engine until it responds, for at most
// WaitAttempts x WaitIntervalSec. On success the local web UI is opened in a
// browser when configured.
func (e *Engine) WaitReady(ctx context.Context) error {
	client := &http.Client{Timeout: 5 * time.Second}
	interval := time.Duration(e.cfg.WaitIntervalSec) * time.Second
	for attempt := 1; attempt <= e.cfg.WaitAttempts; attempt++ {
		// Sleep between attempts, not after the last one.
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}
		resp, err := client.Get(e.healthURL())
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				log.Printf("engine ready after %d attempt(s)", attempt)
				if e.cfg.OpenBrowser {
					uiURL := fmt.Sprintf("http://localhost:%d", e.cfg.Port)
					if err := browser.OpenURL(uiURL); err != nil {
						log.Printf("could not open browser at %s: %v", uiURL, err)
					}
				}
				return nil
			}
		}
		log.Printf("engine not ready (attempt %d/%d)", attempt, e.cfg.WaitAttempts)
	}
	if out, err := os.ReadFile(e.LogPath()); err == nil && strings.Contains(string(out), errorMarker) {
		return fmt.Errorf("engine failed to start:\n%s", logTail(string(out)))
	}
	return fmt.Errorf("engine did not respond on %s after %d attempts", e.healthURL(), e.cfg.WaitAttempts)
}

// Stop kills the engine process launched by this Engine, or the one recorded
// in the data dir's pid file if this process did not launch it.
func (e *Engine) Stop() error {
	if e.cmd != nil && e.cmd.Process != nil {
		pid := e.cmd.Process.Pid
		if err := e.cmd.Process.Kill(); err != nil {
			return fmt.Errorf("stopping engine (pid %d): %w", pid, err)
		}
		os.Remove(e.pidPath())
		log.Printf("engine stopped (pid %d)", pid)
		return nil
	}
	return StopByPIDFile(e.cfg.DataDir)
}

// StopByPIDFile stops an engine recorded in <dataDir>/otp.pid by an earlier
// invocation.
func StopByPIDFile(dataDir string) error {
	path := filepath.Join(dataDir, "otp.pid")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("no running engine found (%s): %w", path, err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("invalid pid file %s: %w", path, err)
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	if err := proc.Kill(); err != nil {
		return fmt.Errorf("stopping engine (pid %d): %w", pid, err)
	}
	os.Remove(path)
	log.Printf("engine stopped (pid %d)", pid)
	return nil
}

// logTail returns the last lines of an engine log for error messages.
func logTail(out string) string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) > tailLines {
		lines = lines[len(lines)-tailLines:]
	}
	return strings.Join(lines, "\n")
}
