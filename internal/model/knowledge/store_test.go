package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsValid(t *testing.T) {
	village := Seed()
	require.NoError(t, village.Validate())

	assert.Equal(t, "Si Karame", village.Assistant.Name)
	assert.Len(t, village.Packages, 9)
	assert.Len(t, village.Homestays, 3)
	assert.Len(t, village.Suggestions, 4)
	for _, loc := range village.Locations {
		assert.Contains(t, loc.MapURL, "https://maps.app.goo.gl/")
	}
}

func TestParseRejectsMissingFields(t *testing.T) {
	_, err := Parse([]byte("name: Desa Contoh\n"))
	require.ErrorIs(t, err, ErrInvalidKnowledge)
	assert.Contains(t, err.Error(), "assistant.name")
	assert.Contains(t, err.Error(), "assistant.welcome")
}

func TestParseRejectsLocationWithoutLink(t *testing.T) {
	doc := `
name: Desa Contoh
assistant:
  name: Pemandu
  welcome: Halo!
locations:
  - name: Pantai
`
	_, err := Parse([]byte(doc))
	require.ErrorIs(t, err, ErrInvalidKnowledge)
	assert.Contains(t, err.Error(), "locations[0]")
}

func TestLoadFile(t *testing.T) {
	doc := `
name: Desa Contoh
region: Banten
assistant:
  name: Pemandu
  welcome: Halo, selamat datang!
  styleGuide:
    - Jawab singkat.
homestays:
  - name: Rumah Biru
    price: 200000
    label: Hemat
locations:
  - name: Pantai Contoh
    mapUrl: https://maps.example/pantai
suggestions:
  - Ada homestay murah?
`
	path := filepath.Join(t.TempDir(), "village.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	village, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Desa Contoh", village.Name)
	assert.Equal(t, "Pemandu", village.Assistant.Name)
	require.Len(t, village.Homestays, 1)
	assert.Equal(t, 200000, village.Homestays[0].Price)
	assert.Equal(t, []string{"Ada homestay murah?"}, village.Suggestions)
}

func TestLoadFallsBackToSeed(t *testing.T) {
	village, err := Load("  ")
	require.NoError(t, err)
	assert.Equal(t, Seed().Name, village.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 950", FormatRupiah(950))
	assert.Equal(t, "Rp 50.000", FormatRupiah(50000))
	assert.Equal(t, "Rp 1.250.000", FormatRupiah(1250000))
	assert.Equal(t, "Rp 12.345.678.900", FormatRupiah(12345678900))
	assert.Equal(t, "-Rp 1.000", FormatRupiah(-1000))
	assert.Equal(t, "Rp 500.000", Homestay{Price: 500000}.PriceLabel())
}
