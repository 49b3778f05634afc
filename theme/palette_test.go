package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPalette(t *testing.T) {
	p := Default()
	assert.Equal(t, "plasma", p.Name)
	assert.Len(t, p.Colors, 10)
}

func TestParseGPL(t *testing.T) {
	src := `GIMP Palette
Name: test
Columns: 2
#
  0   0   0	black
255 255 255	white
`
	p, err := ParseGPL(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "test", p.Name)
	require.Len(t, p.Colors, 2)
	assert.Equal(t, RGB{0, 0, 0}, p.Colors[0])
	assert.Equal(t, RGB{255, 255, 255}, p.Colors[1])
}

func TestParseGPLEmpty(t *testing.T) {
	_, err := ParseGPL(strings.NewReader("GIMP Palette\nName: empty\n"))
	assert.Error(t, err)
}

func TestLoadGPLReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.gpl")
	src := "GIMP Palette\nName: two\n0 0 0\n255 255 255\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	p, err := LoadGPL(path)
	require.NoError(t, err)
	assert.Equal(t, "two", p.Name)
	assert.Len(t, p.Colors, 2)
}

func TestLoadGPLShippedPalette(t *testing.T) {
	p, err := LoadGPL(filepath.Join("..", "palettes", "plasma.gpl"))
	require.NoError(t, err)
	assert.Equal(t, "plasma", p.Name)
	assert.Equal(t, Default().Colors, p.Colors)
}

func TestLoadGPLMissingFallsBack(t *testing.T) {
	p, err := LoadGPL(filepath.Join(t.TempDir(), "nope.gpl"))
	require.NoError(t, err)
	assert.Equal(t, "plasma", p.Name)
}

func TestLookupEndpointsAndMidpoint(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	assert.Equal(t, RGB{200, 100, 50}, p.Lookup(2))
	assert.Equal(t, RGB{100, 50, 25}, p.Lookup(0.5))
}
