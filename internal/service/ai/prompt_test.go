package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sukarame/si-karame/backend/internal/model/knowledge"
)

func TestBuildSystemPromptCoversKnowledge(t *testing.T) {
	village := knowledge.Seed()
	prompt := NewPromptBuilder(village).BuildSystemPrompt()

	assert.True(t, strings.HasPrefix(prompt, `Kamu adalah "Si Karame"`))
	assert.Contains(t, prompt, "Carita, Kabupaten Pandeglang, Banten")
	assert.Contains(t, prompt, "menawarkan 9 paket wisata unggulan")
	assert.Contains(t, prompt, "**Pondok Badak** (Rp 500.000)")
	assert.Contains(t, prompt, "**Ceria Homestay** (Rp 250.000)")
	assert.Contains(t, prompt, "https://jadesta.kemenparekraf.go.id/desa/sukarame")
	assert.Contains(t, prompt, "Save Our Ocean")
	for _, loc := range village.Locations {
		assert.Contains(t, prompt, loc.MapURL)
	}
}

func TestBuildSystemPromptSkipsEmptySections(t *testing.T) {
	prompt := NewPromptBuilder(knowledge.Village{
		Name:      "Desa Contoh",
		Assistant: knowledge.Assistant{Name: "Pemandu", Welcome: "Halo"},
		Access:    "Naik bus dari terminal.",
	}).BuildSystemPrompt()

	assert.Contains(t, prompt, "1. **Akses**: Naik bus dari terminal.")
	assert.NotContains(t, prompt, "Homestay")
	assert.NotContains(t, prompt, "Panduan Gaya Bicara")
	assert.NotContains(t, prompt, "terletak di kawasan")
}
