//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/gliedit"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"fz":  Test.Fuzz,
	"fmt": Lint.Fmt,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/gliedit with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building gliedit...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/gliedit")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install for cmd/gliedit.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gliedit")
}

// Default runs the race-enabled suite through gotestsum. GOTESTSUM_FORMAT
// picks the output format.
func (Test) Default() error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", cmp.Or(os.Getenv("GOTESTSUM_FORMAT"), "pkgname-and-test-fails"),
		"--",
		"-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// Fuzz runs each fuzz target for FUZZTIME (default 15s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "15s")
	targets := []struct{ pkg, name string }{
		{"./pkg/pattern", "FuzzClassify"},
		{"./pkg/fsutil", "FuzzWriteAtomic"},
		{"./pkg/buffer", "FuzzLoadRoundTrip"},
		{"./pkg/diff", "FuzzLines"},
	}
	for _, tgt := range targets {
		fmt.Printf("Fuzzing %s %s for %s...\n", tgt.pkg, tgt.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+tgt.name+"$", "-fuzztime="+fuzzTime, tgt.pkg); err != nil {
			return fmt.Errorf("fuzz %s: %w", tgt.name, err)
		}
	}
	return nil
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without fixing anything.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt runs gofmt -w.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change a file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Gate runs every CI check.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		CI.Smoke,
	)
	fmt.Println("✓ CI gate passed")
	return nil
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	read := func() (string, error) {
		mod, err := os.ReadFile("go.mod")
		if err != nil {
			return "", err
		}
		sum, err := os.ReadFile("go.sum")
		if err != nil {
			return "", err
		}
		return string(mod) + string(sum), nil
	}

	before, err := read()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := read()
	if err != nil {
		return err
	}
	if before != after {
		return errors.New("go.mod or go.sum changed after 'go mod tidy'")
	}
	return nil
}

// Smoke runs the built binary against a scratch ignore file: an edit with
// --dry-run must leave it untouched and check must report the invalid line.
func (CI) Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "gliedit-smoke")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	const content = "# smoke\nsrc/a.go:generic-api-key:3\nnot a fingerprint\n"
	ignore := filepath.Join(dir, ".gitleaksignore")
	if err := os.WriteFile(ignore, []byte(content), 0o644); err != nil {
		return err
	}

	bin, err := filepath.Abs(binary)
	if err != nil {
		return err
	}
	if err := sh.RunV(bin, "view", "--file", ignore, "--lines", "2"); err != nil {
		return fmt.Errorf("view: %w", err)
	}
	if err := sh.RunV(bin, "edit", "--file", ignore, "--dry-run", "3", "src/b.go:rule:1"); err != nil {
		return fmt.Errorf("edit --dry-run: %w", err)
	}
	if got, err := os.ReadFile(ignore); err != nil || string(got) != content {
		return fmt.Errorf("dry run modified %s", ignore)
	}

	// Exit 1 means invalid lines were found, which this file has.
	ran, err := sh.Exec(nil, nil, os.Stdout, os.Stderr, bin, "check", "--file", ignore)
	if !ran || sh.ExitStatus(err) != 1 {
		return fmt.Errorf("check: want exit 1, got %d (%v)", sh.ExitStatus(err), err)
	}
	return nil
}

// Default runs the benchmarks.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects main.version, main.commit and main.date.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
