//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

var binaries = []string{"grove", "scenetool"}

// Builds every binary into ./bin.
func (Build) All() error {
	for _, name := range binaries {
		out := filepath.Join("bin", name)
		if _, err := executeCmd("go", withArgs("build", "-o", out, "./cmd/"+name), withStream()); err != nil {
			return err
		}
	}
	fmt.Println("Binaries written to ./bin")
	return nil
}

// Runs go vet and the test suite.
func (Build) Check() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Validates every scene file under the given directory with scenetool.
func (Build) Scenes(dir string) error {
	matches, err := scenesIn(dir)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if _, err := executeCmd("go", withArgs("run", "./cmd/scenetool", "validate", m), withStream()); err != nil {
			return err
		}
	}
	return nil
}
