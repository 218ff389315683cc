// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-book2md/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// GOOS is the target operating system used to pick install instructions.
var GOOS = runtime.GOOS

// ForConverterNotFound returns hints for a converter binary missing from PATH.
// Suggests an install command for the platform and the BOOK2MD_PANDOC override.
func ForConverterNotFound(binary string) string {
	var hints []string

	if binary == "pandoc" {
		switch {
		case IsInContainer():
			hints = append(hints, "add 'apt-get install -y pandoc' to the image")
		case GOOS == "darwin":
			hints = append(hints, "install with 'brew install pandoc'")
		case GOOS == "windows":
			hints = append(hints, "install with 'winget install JohnMacFarlane.Pandoc'")
		default:
			hints = append(hints, "install pandoc from your package manager or https://pandoc.org/installing.html")
		}
	}

	if os.Getenv("BOOK2MD_PANDOC") == "" {
		hints = append(hints, "set BOOK2MD_PANDOC or --pandoc to a custom binary")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow conversions.
func ForTimeout() string {
	return format("for long chapters, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), "/go-book2md/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForMissingEndMarker returns hints when the master document never reaches \end{document}.
func ForMissingEndMarker() string {
	return format(`the last chapter is written only when \end{document} is reached`)
}

// ForDanglingLinks returns hints when chapters link to absent glossary anchors.
func ForDanglingLinks(glossary string) string {
	return format("rebuild the whole book so " + glossary + " holds every chapter's terms")
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
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
