// Package java locates a Java runtime and verifies that its version can run a
// given OpenTripPlanner release.
package java

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// versionPattern matches the quoted version in `java -version` output, e.g.
// openjdk version "17.0.2" or java version "1.8.0_292".
var versionPattern = regexp.MustCompile(`version "([^"]+)"`)

// Find returns the path of the java executable on PATH.
func Find() (string, error) {
	path, err := exec.LookPath("java")
	if err != nil {
		return "", fmt.Errorf("no java executable found on PATH: %w", err)
	}
	return path, nil
}

// Version runs `java -version` and returns the raw version string, e.g.
// "17.0.2" or "1.8.0_292". The JVM prints its banner on stderr.
func Version(ctx context.Context, javaPath string) (string, error) {
	out, err := exec.CommandContext(ctx, javaPath, "-version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("running %s -version: %w", javaPath, err)
	}
	m := versionPattern.FindSubmatch(out)
	if m == nil {
		return "", fmt.Errorf("could not find a version string in java output: %q", strings.TrimSpace(string(out)))
	}
	return string(m[1]), nil
}

// ParseMajor extracts the major version from a Java version string. Legacy
// strings ("1.8.0_292") report the second component; modern ones ("17.0.2",
// "11", "21-ea") the first.
func ParseMajor(version string) (int, error) {
	v := strings.TrimSpace(version)
	if v == "" {
		return 0, fmt.Errorf("empty java version")
	}
	// Strip suffixes like -ea or +7.
	if i := strings.IndexAny(v, "-+_"); i > 0 && !strings.HasPrefix(v, "1.") {
		v = v[:i]
	}
	parts := strings.Split(v, ".")
	idx := 0
	if parts[0] == "1" && len(parts) > 1 {
		idx = 1
	}
	p := parts[idx]
	if i := strings.IndexAny(p, "-+_"); i > 0 {
		p = p[:i]
	}
	major, err := strconv.Atoi(p)
	if err != nil {
		return 0, fmt.Errorf("invalid java version %q", version)
	}
	return major, nil
}

// RequiredMajor returns the Java major version an OTP release needs.
func RequiredMajor(otpMajor, otpMinor int) int {
	switch {
	case otpMajor <= 1:
		return 8
	case otpMajor == 2 && otpMinor <= 1:
		return 11
	case otpMajor == 2 && otpMinor <= 4:
		return 17
	default:
		return 21
	}
}

// Check verifies the Java runtime at javaPath against the requirement of the
// targeted OTP release. It returns the detected version string.
func Check(ctx context.Context, javaPath string, otpMajor, otpMinor int) (string, error) {
	version, err := Version(ctx, javaPath)
	if err != nil {
		return "", err
	}
	major, err := ParseMajor(version)
	if err != nil {
		return "", err
	}
	want := RequiredMajor(otpMajor, otpMinor)
	if major != want {
		return version, fmt.Errorf("OTP %d.%d requires Java %d but found Java %d (%s)", otpMajor, otpMinor, want, major, version)
	}
	return version, nil
}
