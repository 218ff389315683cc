package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	flag "github.com/spf13/pflag"

	book2md "github.com/alnah/go-book2md"
	"github.com/alnah/go-book2md/internal/cache"
	"github.com/alnah/go-book2md/internal/config"
	"github.com/alnah/go-book2md/internal/hints"
)

// doctorVersionTimeout bounds the converter --version probe.
const doctorVersionTimeout = 10 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // "ready", "warnings", "errors"
	Converter converterInfo `json:"converter"`
	Cache     cacheInfo     `json:"cache"`
	Env       envInfo       `json:"environment"`
	System    systemInfo    `json:"system"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// converterInfo holds converter detection results.
type converterInfo struct {
	Binary  string `json:"binary"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// cacheInfo holds conversion cache results.
type cacheInfo struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
	Entries int    `json:"entries"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	f, err := parseDoctorFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	cfg, err := loadConfig(f.common, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	if f.pandoc != "" {
		cfg.Converter.Command = f.pandoc
	}

	result := runDoctor(ctx, cfg, env)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, cfg *config.Config, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkConverter(ctx, result, cfg.Converter.Command, env)
	checkCache(result, cfg)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConverter locates the converter binary and asks for its version.
func checkConverter(ctx context.Context, result *doctorResult, binary string, env *Environment) {
	if binary == "" {
		binary = book2md.DefaultConverterBinary
	}
	result.Converter.Binary = binary

	path, err := env.LookPath(binary)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found%s", binary, hints.ForConverterNotFound(binary)))
		return
	}
	result.Converter.Found = true
	result.Converter.Path = path

	ctx, cancel := context.WithTimeout(ctx, doctorVersionTimeout)
	defer cancel()

	conv := &book2md.PandocConverter{Runner: env.Runner, Binary: path}
	version, err := conv.Version(ctx)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get %s version: %v", binary, err))
		return
	}
	result.Converter.Version = version
}

// checkCache opens the configured cache and counts its entries.
func checkCache(result *doctorResult, cfg *config.Config) {
	if !cfg.Cache.Enabled {
		return
	}
	result.Cache.Enabled = true

	path := cfg.Cache.Path
	if path == "" {
		var err error
		if path, err = cache.DefaultPath(); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Cache location unknown: %v", err))
			return
		}
	}
	store, err := cache.Open(path)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Cache not usable: %v", err))
		return
	}
	defer func() { _ = store.Close() }()

	n, err := store.Len()
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Cache not readable: %v", err))
		return
	}
	result.Cache.Path = path
	result.Cache.Entries = n
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("BOOK2MD_CONTAINER") == "1" {
		return true, "BOOK2MD_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used by the converter is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "book2md-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "book2md doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Converter")
	if r.Converter.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Converter.Path)
		if r.Converter.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Converter.Version)
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] %s not found\n", r.Converter.Binary)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Cache")
	switch {
	case !r.Cache.Enabled:
		fmt.Fprintln(w, "  [OK] Disabled")
	case r.Cache.Path != "":
		fmt.Fprintf(w, "  [OK] %s (%d entries)\n", r.Cache.Path, r.Cache.Entries)
	default:
		fmt.Fprintln(w, "  [WARN] Enabled but not usable")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
