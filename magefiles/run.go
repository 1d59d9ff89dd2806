//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the walkthrough demo with the embedded default scene.
func (Run) Demo() error {
	fmt.Println("Run demo...")
	_, err := executeCmd("go", withArgs("run", "./cmd/grove", "-windowed"), withStream())
	return err
}

// Runs the demo on a scene file and reloads it on change.
func (Run) Scene(path string) error {
	_, err := executeCmd("go", withArgs("run", "./cmd/grove", "-windowed", "-debug", "-watch", "-scene", path), withStream())
	return err
}

// Walks forward into the first tree of the default scene without a window.
func (Run) Simulate() error {
	_, err := executeCmd("go", withArgs("run", "./cmd/scenetool", "simulate", "-keys", "forward", "-steps", "120", "-dt", "0.05", "default"), withStream())
	return err
}
