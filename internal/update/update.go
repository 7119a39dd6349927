// Package update checks whether a newer mdiff release is available.
package update

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-version"

	"github.com/mdiff-dev/mdiff/internal/debug"
	"github.com/mdiff-dev/mdiff/internal/ui"
)

const (
	checkInterval = 24 * time.Hour
	lastCheckFile = "last_check"
	timeLayout    = "02.01.2006 15:04"
)

// releaseURL is a variable so tests can point it at a stub server.
var releaseURL = "https://api.github.com/repos/mdiff-dev/mdiff/releases/latest"

// Check fetches the latest release tag and prints an upgrade notice if
// it is newer than currentVersion. Network failures are reported but
// never fatal.
func Check(currentVersion string) error {
	current, err := version.NewVersion(currentVersion)
	if err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}

	latestStr := fetchLatestVersion()
	if latestStr == "" {
		ui.PrintWarning("can't get latest version from server")
		return nil
	}
	latest, err := version.NewVersion(latestStr)
	if err != nil {
		// A garbled tag is the server's problem, not the user's.
		ui.PrintWarning("can't get latest version from server")
		return nil
	}

	if current.LessThan(latest) {
		notify(current, latest)
		return nil
	}

	ui.PrintSuccess("this version is up-to-date")
	return nil
}

// CheckDaily is the quiet background variant: it runs at most once per
// day, tracking the last check time in a file under stateDir, and only
// speaks when a newer version exists. Any failure is swallowed; the
// update check must never break a command.
func CheckDaily(stateDir, currentVersion string) {
	if last, ok := lastCheck(stateDir); ok && time.Since(last) < checkInterval {
		return
	}
	setLastCheck(stateDir)

	current, err := version.NewVersion(currentVersion)
	if err != nil {
		debug.Warn("update check skipped", "version", currentVersion, "err", err)
		return
	}
	latestStr := fetchLatestVersion()
	if latestStr == "" {
		debug.Warn("update check: can't reach release server")
		return
	}
	latest, err := version.NewVersion(latestStr)
	if err != nil {
		debug.Warn("update check: bad release tag", "tag", latestStr, "err", err)
		return
	}
	if current.LessThan(latest) {
		notify(current, latest)
	}
}

func notify(current, latest *version.Version) {
	ui.PrintWarning("a new version is available!")
	fmt.Printf("Current version: %s\n", current)
	fmt.Printf("Latest version:  %s\n", latest)
	fmt.Printf("\nUpdate with: go install github.com/mdiff-dev/mdiff/cmd/mdiff@latest\n")
}

// MarkChecked records that a check just happened, resetting the daily
// interval. The version command calls this because it always checks.
func MarkChecked(stateDir string) {
	setLastCheck(stateDir)
}

func fetchLatestVersion() string {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(releaseURL)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return ""
	}
	return strings.TrimPrefix(release.TagName, "v")
}

func lastCheck(stateDir string) (time.Time, bool) {
	data, err := os.ReadFile(filepath.Join(stateDir, lastCheckFile))
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(timeLayout, strings.TrimSpace(string(data)), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func setLastCheck(stateDir string) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return
	}
	stamp := time.Now().Format(timeLayout)
	_ = os.WriteFile(filepath.Join(stateDir, lastCheckFile), []byte(stamp), 0o644)
}
