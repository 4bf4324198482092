package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
)

func writeSources(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const sourcesTOML = `
[[sources]]
id = "ny"
name = "New York Midday"
draw_time = "14:30"
url = "https://example.com/ny"

[[sources]]
id = "fl"
name = "Florida Evening"
draw_time = "21:45"
url = "https://example.com/fl"

[selectors.default.pick3]
numbers = ".pick3 .ball"
date = ".pick3 time"
date_attr = "datetime"

[selectors.fl.pick4]
numbers = "#p4 li"
`

const sourcesYAML = `
sources:
  - id: ny
    name: New York Midday
    draw_time: "14:30"
    url: https://example.com/ny
  - id: fl
    name: Florida Evening
    draw_time: "21:45"
    url: https://example.com/fl
selectors:
  default:
    pick3:
      numbers: .pick3 .ball
      date: .pick3 time
      date_attr: datetime
  fl:
    pick4:
      numbers: "#p4 li"
`

func TestLoadSources_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "sources.toml", sourcesTOML},
		{"yaml", "sources.yaml", sourcesYAML},
		{"yml", "sources.YML", sourcesYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf, err := LoadSources(writeSources(t, tt.file, tt.content))
			require.NoError(t, err)

			require.Len(t, sf.Sources, 2)
			assert.Equal(t, domain.SourceConfig{
				ID: "ny", Name: "New York Midday", DrawTime: "14:30", URL: "https://example.com/ny",
			}, sf.Sources[0])
			assert.Equal(t, "fl", sf.Sources[1].ID, "file order is kept")

			assert.Equal(t, domain.FieldSelectors{
				Numbers: ".pick3 .ball", Date: ".pick3 time", DateAttr: "datetime",
			}, sf.Selectors[domain.DefaultSelectorKey]["pick3"])
			assert.Equal(t, "#p4 li", sf.Selectors["fl"]["pick4"].Numbers)
		})
	}
}

func TestLoadSources_MalformedDrawTimeIsKept(t *testing.T) {
	path := writeSources(t, "sources.toml", `
[[sources]]
id = "bad"
draw_time = "25:99"
`)

	sf, err := LoadSources(path)
	require.NoError(t, err)
	require.Len(t, sf.Sources, 1)
	assert.Equal(t, "25:99", sf.Sources[0].DrawTime)
	assert.NotNil(t, sf.Selectors)
}

func TestLoadSources_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown extension", "sources.json", `{}`},
		{"unknown toml key", "sources.toml", "[[sources]]\nid = \"ny\"\ndrawtime = \"14:30\"\n"},
		{"unknown yaml key", "sources.yaml", "sources:\n  - id: ny\n    drawtime: \"14:30\"\n"},
		{"broken toml", "sources.toml", "[[sources]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSources(writeSources(t, tt.file, tt.content))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLoadSources_MissingFile(t *testing.T) {
	_, err := LoadSources(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSources_EmptyYAML(t *testing.T) {
	sf, err := LoadSources(writeSources(t, "sources.yaml", ""))
	require.NoError(t, err)
	assert.Empty(t, sf.Sources)
}
