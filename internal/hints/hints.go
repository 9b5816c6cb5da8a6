// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"
)

// appName names the per-user config directory searched by --config.
const appName = "go-texmath"

// UserConfigDir is replaceable in tests.
var UserConfigDir = os.UserConfigDir

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForMatchTimeout returns hints for a math scan that gave up.
func ForMatchTimeout() string {
	return format("raise --match-timeout (or math.matchTimeout); very long unclosed $ runs are the usual cause")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the per-user config directory when it is known.
func ForConfigNotFound() string {
	hint := "use --config /path/to/file.yaml"
	if dir, err := UserConfigDir(); err == nil {
		hint += " or create " + filepath.Join(dir, appName, "<name>.yaml")
	}
	return format(hint)
}

// ForWrapTag returns hints for rejected wrap tag names.
func ForWrapTag() string {
	return format("use a letter followed by letters, digits or hyphens, e.g. mathjax or tex-math")
}

// ForHighlightStyle returns hints listing the valid chroma styles.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForMacroFile returns hints for unreadable macro files.
func ForMacroFile() string {
	return formatHints([]string{
		"relative paths resolve against the working directory",
		"check macros.files and TEXMATH_MACROS",
	})
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
