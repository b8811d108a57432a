// Package fixtures embeds the default synthetic scenario collection.
package fixtures

import (
	_ "embed"

	"github.com/aretw0/ringlens/pkg/adapters/memory"
)

// ScenariosJSON is the raw default scenario document.
//
//go:embed scenarios.json
var ScenariosJSON []byte

// Loader returns a loader over the embedded scenarios.
func Loader() *memory.Loader {
	return memory.NewLoaderFromJSON(ScenariosJSON)
}
