package file

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
)

// SourceFile is the parsed source registry file.
type SourceFile struct {
	// Sources in file order; the registry keeps this order.
	Sources []domain.SourceConfig

	// Selectors for the extractor, keyed by source ID or "default".
	Selectors domain.SelectorTable
}

type sourceEntry struct {
	ID       string `toml:"id" yaml:"id"`
	Name     string `toml:"name" yaml:"name"`
	DrawTime string `toml:"draw_time" yaml:"draw_time"`
	URL      string `toml:"url" yaml:"url"`
}

type sourceDocument struct {
	Sources   []sourceEntry        `toml:"sources" yaml:"sources"`
	Selectors domain.SelectorTable `toml:"selectors" yaml:"selectors"`
}

// LoadSources reads a registry file. The format follows the extension:
// .toml, or .yaml/.yml. Unknown keys are rejected so typos surface at startup.
//
//	[[sources]]
//	id = "ny"
//	name = "New York Midday"
//	draw_time = "14:30"
//	url = "https://example.com/ny"
//
//	[selectors.default.pick3]
//	numbers = ".pick3 .ball"
//	date = ".pick3 time"
//	date_attr = "datetime"
func LoadSources(path string) (*SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources: %w", err)
	}

	var doc sourceDocument
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, fmt.Errorf("%w: sources file %s: unsupported extension %q",
			domain.ErrInvalidInput, path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidInput, path, err)
	}

	out := &SourceFile{
		Sources:   make([]domain.SourceConfig, 0, len(doc.Sources)),
		Selectors: doc.Selectors,
	}
	for _, e := range doc.Sources {
		out.Sources = append(out.Sources, domain.SourceConfig{
			ID:       e.ID,
			Name:     e.Name,
			DrawTime: e.DrawTime,
			URL:      e.URL,
		})
	}
	if out.Selectors == nil {
		out.Selectors = domain.SelectorTable{}
	}
	return out, nil
}
