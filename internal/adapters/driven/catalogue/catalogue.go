// Package catalogue reads and writes catalogue files.
//
// A catalogue file is TOML with one [[items]] table per entry:
//
//	[[items]]
//	id = "25"
//	name = "pikachu"
//	url = "https://pokeapi.co/api/v2/pokemon/25/"
//
// The id defaults to the name when omitted. The binary embeds a built-in
// catalogue in the same format.
package catalogue

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
)

//go:embed builtin.toml
var builtinData []byte

type fileEntry struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	URL  string `toml:"url,omitempty"`
}

type file struct {
	Items []fileEntry `toml:"items"`
}

// Builtin returns the embedded catalogue.
func Builtin() ([]domain.Item, error) {
	return Decode(builtinData)
}

// ReadFile decodes the catalogue file at path.
func ReadFile(path string) ([]domain.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	items, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Decode parses catalogue TOML. Every entry needs a non-blank name.
func Decode(data []byte) ([]domain.Item, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	items := make([]domain.Item, 0, len(f.Items))
	for i, entry := range f.Items {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: item %d has no name", domain.ErrInvalidInput, i+1)
		}
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			id = name
		}
		items = append(items, domain.Item{ID: id, Name: name, URL: entry.URL})
	}
	return items, nil
}

// Encode renders items as catalogue TOML.
func Encode(items []domain.Item) ([]byte, error) {
	f := file{Items: make([]fileEntry, 0, len(items))}
	for _, item := range items {
		f.Items = append(f.Items, fileEntry{ID: item.ID, Name: item.Name, URL: item.URL})
	}
	return toml.Marshal(f)
}
