package contract

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Correlation strength label constants.
const (
	StrongValue   = "Strong"
	ModerateValue = "Moderate"
	WeakValue     = "Weak"
	NoneValue     = "None"
)

// Color variables for console output.
var (
	StrongColor   = color.New(color.FgGreen, color.Bold) // strong fit, the headline result
	ModerateColor = color.New(color.FgYellow)            // usable but noisy fit
	WeakColor     = color.New(color.FgMagenta)           // weak fit, report with caution
	NoneColor     = color.New(color.FgRed)               // no linear relationship
)

// GetPlainLabel returns a plain text label for the strength of a fit based
// on its R². This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(rSquared float64) string {
	switch {
	case rSquared >= 0.8:
		return StrongValue
	case rSquared >= 0.5:
		return ModerateValue
	case rSquared >= 0.2:
		return WeakValue
	default:
		return NoneValue
	}
}

// GetColorLabel returns a colored strength label for console output (table).
func GetColorLabel(rSquared float64) string {
	text := GetPlainLabel(rSquared)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	case WeakValue:
		return WeakColor.Sprint(text)
	default:
		return NoneColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout on an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetStoreDBFilePath returns the default SQLite path for the dataset store.
func GetStoreDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shotline.db"
	}
	return filepath.Join(home, ".shotline", "shotline.db")
}

// EnsureStoreDir creates the parent directory for a SQLite store path.
func EnsureStoreDir(dbPath string) error {
	return os.MkdirAll(filepath.Dir(dbPath), 0o755)
}
