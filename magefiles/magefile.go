//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "crewmate"
	binaryDir  = "bin"
	cmdDir     = "./cmd/crewmate"
)

var Default = Build

// Build compiles the crewmate binary to bin/, stamping VERSION if set.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}

	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}

	return sh.RunV(binGo, "build", "-v",
		"-ldflags", "-X main.version="+version,
		"-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs the unit tests. Postgres repository tests run only when
// TEST_DATABASE_URL points at a reachable database.
func Test() error {
	return sh.RunV(binGo, "test", "-race", "-count=1", "./...")
}

// Lint runs go vet.
func Lint() error {
	return sh.RunV(binGo, "vet", "./...")
}

// Run builds and starts the server against a local SQLite file.
func Run() error {
	mg.Deps(Build)
	env := map[string]string{"STORE_DRIVER": "sqlite"}
	return sh.RunWithV(env, filepath.Join(binaryDir, binaryName), "serve")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}
