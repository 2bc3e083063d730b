package ai

import (
	"fmt"
	"strings"

	"github.com/sukarame/si-karame/backend/internal/model/knowledge"
)

// PromptBuilder renders the persona system instruction from village knowledge.
type PromptBuilder struct {
	village knowledge.Village
}

// NewPromptBuilder creates a builder bound to the given knowledge.
func NewPromptBuilder(village knowledge.Village) *PromptBuilder {
	return &PromptBuilder{village: village}
}

// Village returns the knowledge the builder renders from.
func (pb *PromptBuilder) Village() knowledge.Village {
	return pb.village
}

// BuildSystemPrompt creates the full persona instruction: identity, the
// knowledge sections and the speaking style.
func (pb *PromptBuilder) BuildSystemPrompt() string {
	v := pb.village

	var b strings.Builder
	fmt.Fprintf(&b, "Kamu adalah %q, asisten virtual ramah dan berpengetahuan luas untuk %s", v.Assistant.Name, v.Name)
	if v.Region != "" {
		fmt.Fprintf(&b, ", yang terletak di kawasan %s", v.Region)
	}
	b.WriteString(".\n\nTugasmu adalah membantu wisatawan dengan informasi mengenai:\n")

	section := 0
	next := func(title string) {
		section++
		fmt.Fprintf(&b, "\n%d. **%s**: ", section, title)
	}

	if v.Attractions != "" {
		next("Daya Tarik Utama")
		b.WriteString(v.Attractions)
		b.WriteString("\n")
	}

	if len(v.Packages) > 0 {
		next("Paket Wisata & Aktivitas")
		fmt.Fprintf(&b, "\n%s menawarkan %d paket wisata unggulan. Jika user bertanya tentang kegiatan atau paket, jelaskan opsi berikut:\n", v.Name, len(v.Packages))
		for i, pkg := range v.Packages {
			fmt.Fprintf(&b, "   %d. **%s**: %s\n", i+1, pkg.Name, pkg.Description)
		}
	}

	if len(v.Homestays) > 0 {
		next("Fasilitas & Homestay")
		fmt.Fprintf(&b, "\nKamu memiliki data spesifik mengenai penginapan/homestay di %s. Jika user bertanya tentang penginapan, berikan rekomendasi dari daftar berikut:\n", v.Name)
		for _, h := range v.Homestays {
			fmt.Fprintf(&b, "   * **%s** (%s)\n", h.Name, h.PriceLabel())
			if h.Description != "" {
				fmt.Fprintf(&b, "     - Deskripsi: %s\n", h.Description)
			}
			if h.SuitableFor != "" {
				fmt.Fprintf(&b, "     - Catatan: %s\n", h.SuitableFor)
			}
		}
	}

	if v.Culture != "" {
		next("Budaya")
		b.WriteString(v.Culture)
		b.WriteString("\n")
	}

	if v.Access != "" {
		next("Akses")
		b.WriteString(v.Access)
		b.WriteString("\n")
	}

	if len(v.Locations) > 0 {
		next("Lokasi & Peta")
		b.WriteString("Berikut adalah daftar lokasi spesifik beserta link Google Maps yang **harus** kamu berikan jika user bertanya tentang lokasi tempat-tempat ini:\n")
		for _, loc := range v.Locations {
			fmt.Fprintf(&b, "   - **%s**: %s", loc.Name, loc.MapURL)
			if loc.Address != "" {
				fmt.Fprintf(&b, " (Alamat: %s)", loc.Address)
			}
			b.WriteString("\n")
		}
	}

	if len(v.Websites) > 0 {
		next("Website & Informasi Resmi")
		b.WriteString("\n")
		for _, site := range v.Websites {
			fmt.Fprintf(&b, "   - **%s**: %s\n", site.Name, site.URL)
			if site.Usage != "" {
				fmt.Fprintf(&b, "   - %s\n", site.Usage)
			}
		}
	}

	if len(v.Assistant.StyleGuide) > 0 {
		b.WriteString("\n**Panduan Gaya Bicara**:\n")
		for _, rule := range v.Assistant.StyleGuide {
			fmt.Fprintf(&b, "- %s\n", rule)
		}
		if len(v.Assistant.Emojis) > 0 {
			fmt.Fprintf(&b, "- Emoji yang cocok: %s\n", strings.Join(v.Assistant.Emojis, ", "))
		}
		if v.Contact != "" {
			fmt.Fprintf(&b, "- Kontak pengelola desa yang bisa disarankan: %s\n", v.Contact)
		}
	}

	if v.Assistant.Campaign != "" {
		fmt.Fprintf(&b, "\n**Penting**: %s\n", v.Assistant.Campaign)
	}

	return b.String()
}
