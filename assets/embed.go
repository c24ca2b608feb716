// Package assets bundles the default dictionary so the solver runs without
// any word list configured.
package assets

import (
	"embed"
	"io"
)

//go:embed words.txt
var FS embed.FS

// DefaultDictionary is the name of the embedded word list.
const DefaultDictionary = "words.txt"

// Open returns the embedded default dictionary file.
func Open() (io.ReadCloser, error) {
	return FS.Open(DefaultDictionary)
}
