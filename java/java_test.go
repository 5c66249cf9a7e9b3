package java

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fakeJava writes an executable that prints a JVM banner on stderr, the way
// the real binary does.
func fakeJava(t *testing.T, version string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "java")
	script := "#!/bin/sh\necho 'openjdk version \"" + version + "\" 2022-01-18' >&2\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheck(t *testing.T) {
	path := fakeJava(t, "17.0.2")

	version, err := Check(context.Background(), path, 2, 2)
	if err != nil {
		t.Fatalf("Java 17 should satisfy OTP 2.2: %v", err)
	}
	if version != "17.0.2" {
		t.Errorf("expected version 17.0.2, got %q", version)
	}

	if _, err := Check(context.Background(), path, 2, 5); err == nil {
		t.Error("Java 17 should be rejected for OTP 2.5, which needs 21")
	}
}

func TestParseMajor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "legacy 8", input: "1.8.0_292", want: 8},
		{name: "modern 11", input: "11.0.11", want: 11},
		{name: "modern 17", input: "17.0.2", want: 17},
		{name: "bare major", input: "21", want: 21},
		{name: "early access", input: "21-ea", want: 21},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not-a-version", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMajor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMajor(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMajor(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestRequiredMajor(t *testing.T) {
	tests := []struct {
		name         string
		major, minor int
		want         int
	}{
		{name: "otp 1.5", major: 1, minor: 5, want: 8},
		{name: "otp 2.0", major: 2, minor: 0, want: 11},
		{name: "otp 2.1", major: 2, minor: 1, want: 11},
		{name: "otp 2.2", major: 2, minor: 2, want: 17},
		{name: "otp 2.4", major: 2, minor: 4, want: 17},
		{name: "otp 2.5", major: 2, minor: 5, want: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequiredMajor(tt.major, tt.minor); got != tt.want {
				t.Errorf("RequiredMajor(%d, %d) = %d, want %d", tt.major, tt.minor, got, tt.want)
			}
		})
	}
}

func TestVersionPattern(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "openjdk banner",
			input: "openjdk version \"17.0.2\" 2022-01-18\nOpenJDK Runtime Environment",
			want:  "17.0.2",
		},
		{
			name:  "oracle banner",
			input: "java version \"1.8.0_292\"\nJava(TM) SE Runtime Environment",
			want:  "1.8.0_292",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := versionPattern.FindStringSubmatch(tt.input)
			if m == nil {
				t.Fatalf("no version found in %q", tt.input)
			}
			if m[1] != tt.want {
				t.Errorf("got %q, want %q", m[1], tt.want)
			}
		})
	}
}
