package data

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestDownloadFile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("jar bytes"))
		}))
		defer srv.Close()

		dest := filepath.Join(t.TempDir(), "otp.jar")
		if err := downloadFile(srv.URL, dest); err != nil {
			t.Fatalf("downloadFile: %v", err)
		}
		data, err := os.ReadFile(dest)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "jar bytes" {
			t.Errorf("unexpected file content %q", data)
		}
	})

	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		dest := filepath.Join(t.TempDir(), "otp.jar")
		err := downloadFile(srv.URL, dest)
		if err == nil {
			t.Fatal("a 404 should fail the download")
		}
		if !strings.Contains(err.Error(), "HTTP 404") {
			t.Errorf("error should carry the status, got: %v", err)
		}
		if _, statErr := os.Stat(dest); statErr == nil {
			t.Error("no file should be left behind after a failed download")
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "otp.jar")
		if err := downloadFile("http://127.0.0.1:1/otp.jar", dest); err == nil {
			t.Error("an unreachable host should fail the download")
		}
	})
}

func TestDownloadJar_ReusesExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "otp-2.2.0-shaded.jar")
	if err := os.WriteFile(existing, []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}

	// No server is involved: a present jar must short-circuit the download.
	path, err := DownloadJar("2.2.0", dir)
	if err != nil {
		t.Fatalf("DownloadJar: %v", err)
	}
	if path != existing {
		t.Errorf("expected the cached jar %s, got %s", existing, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "cached" {
		t.Errorf("cached jar was overwritten: %q", data)
	}
}

func TestJarURL(t *testing.T) {
	want := "https://repo1.maven.org/maven2/org/opentripplanner/otp/2.2.0/otp-2.2.0-shaded.jar"
	if got := JarURL("2.2.0"); got != want {
		t.Errorf("JarURL(2.2.0) = %q, want %q", got, want)
	}
}

func TestUnzipInto(t *testing.T) {
	srcDir := t.TempDir()
	zipPath := writeGTFSZip(t, srcDir, "bundle.zip", []string{
		"extract.osm.pbf",
		"nested/feed.zip",
		"docs/",
		".hidden",
	})

	dest := t.TempDir()
	if err := unzipInto(zipPath, dest); err != nil {
		t.Fatalf("unzipInto: %v", err)
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	// Nested entries land flat, directory entries and dotfiles are skipped.
	want := []string{"extract.osm.pbf", "feed.zip"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
			break
		}
	}
}
