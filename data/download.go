package data

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DemoDataURL points at the Isle of Wight demo data set, a small complete
// OSM+GTFS bundle useful for first runs and integration testing.
const DemoDataURL = "https://github.com/ropensci/opentripplanner/releases/download/0.1/isle-of-wight-demo.zip"

// JarURL returns the Maven Central URL of the shaded OTP jar for a release.
func JarURL(version string) string {
	return fmt.Sprintf("https://repo1.maven.org/maven2/org/opentripplanner/otp/%s/otp-%s-shaded.jar", version, version)
}

// DownloadJar fetches the OTP jar for the given release into destDir and
// returns its path. An already-downloaded jar is reused.
func DownloadJar(version, destDir string) (string, error) {
	path := filepath.Join(destDir, fmt.Sprintf("otp-%s-shaded.jar", version))
	if _, err := os.Stat(path); err == nil {
		log.Printf("otp jar already present at %s", path)
		return path, nil
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}
	url := JarURL(version)
	log.Printf("downloading OTP %s from %s", version, url)
	if err := downloadFile(url, path); err != nil {
		return "", err
	}
	return path, nil
}

// DownloadDemo fetches the demo data set and unpacks it into
// destDir/graphs/<router>, the layout the engine expects.
func DownloadDemo(destDir, router string) (string, error) {
	routerDir := filepath.Join(destDir, "graphs", router)
	if err := os.MkdirAll(routerDir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp("", "otp-demo-*.zip")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Close(); err != nil {
		return "", err
	}
	log.Printf("downloading demo data from %s", DemoDataURL)
	if err := downloadFile(DemoDataURL, tmp.Name()); err != nil {
		return "", err
	}
	if err := unzipInto(tmp.Name(), routerDir); err != nil {
		return "", err
	}
	return routerDir, nil
}

func downloadFile(url, dest string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}

// unzipInto extracts a zip archive flat into dir, skipping directory entries
// and rejecting entries that would escape it.
func unzipInto(zipPath, dir string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(f.Name)
		if name == "" || strings.HasPrefix(name, ".") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		dest := filepath.Join(dir, name)
		out, err := os.Create(dest)
		if err != nil {
			rc.Close()
			return err
		}
		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			rc.Close()
			return err
		}
		out.Close()
		rc.Close()
	}
	return nil
}
