//go:build mage

// Package main contains Mage build targets for markov-viz developer tooling.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
)

const (
	binDir  = "bin"
	binName = "markov-viz"
	cmdPkg  = "./cmd/markov-viz"
)

// sampleCSV is written by Sample when no transition matrix exists yet.
const sampleCSV = "From,A,B\nA,0.1,0.9\nB,0.8,0.2\n"

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := run("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return run("go", "test", "./...")
}

// Sample writes a two-state transition_matrix_Q.csv if none exists.
func Sample() error {
	const path = "transition_matrix_Q.csv"
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s already exists\n", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// Convert builds the CLI and converts transition_matrix_Q.csv into
// transition_data.js for the heatmap page.
func Convert() error {
	mg.Deps(Build, Sample)
	return run(filepath.Join(binDir, binName), "convert")
}

// Stats prints Go production and test line counts.
func Stats() error {
	var prod, test int
	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), "_") || info.Name() == binDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)
	return nil
}

// Clean removes build output and the generated data file.
func Clean() error {
	for _, p := range []string{binDir, "transition_data.js"} {
		if err := os.RemoveAll(p); err != nil {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return nil
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
