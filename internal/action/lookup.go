package action

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrProgramNotFound is returned when no candidate executable resolves
// for a program key.
var ErrProgramNotFound = errors.New("program not found")

// programCandidates maps well-known program keys to executable
// candidates per platform. Absolute paths are checked on disk, bare
// names on PATH, in order.
var programCandidates = map[string]map[string][]string{
	"chrome": {
		"windows": {
			"chrome",
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		},
		"darwin": {"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"},
		"linux":  {"google-chrome", "chrome", "chromium", "chromium-browser"},
	},
	"code": {
		"windows": {"code"},
		"darwin":  {"code", "/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code"},
		"linux":   {"code"},
	},
	"explorer": {
		"windows": {"explorer"},
		"darwin":  {"open"},
		"linux":   {"xdg-open", "nautilus", "nemo"},
	},
}

// resolveProgram turns a launch target into an executable path.
// Absolute paths and PATH entries win over the candidate table, so a
// target can be a direct command as well as a lookup key.
func resolveProgram(target string) (string, error) {
	if filepath.IsAbs(target) {
		if _, err := os.Stat(target); err == nil {
			return target, nil
		}
		return "", fmt.Errorf("%w: %s", ErrProgramNotFound, target)
	}

	if path, err := exec.LookPath(target); err == nil {
		return path, nil
	}

	for _, candidate := range programCandidates[target][runtime.GOOS] {
		if filepath.IsAbs(candidate) {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			continue
		}
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrProgramNotFound, target)
}

// urlOpener returns the platform command for opening a URL in the
// default browser.
func urlOpener(url string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
