package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sukarame/si-karame/backend/internal/model/knowledge"
)

// RenderInfo lays out the village sidebar for a terminal of the given width.
func RenderInfo(v knowledge.Village, width int, styles Styles) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(v.Name))
	b.WriteString("\n")
	if v.Region != "" {
		b.WriteString(styles.Subtitle.Render(v.Region))
		b.WriteString("\n")
	}
	if v.Summary != "" {
		b.WriteString(lipgloss.NewStyle().Width(width).Render(v.Summary))
		b.WriteString("\n")
	}

	if len(v.Highlights) > 0 {
		b.WriteString(styles.Section.Render("Daya Tarik"))
		b.WriteString("\n")
		for _, h := range v.Highlights {
			fmt.Fprintf(&b, "• %s  %s\n", h.Title, styles.Muted.Render(h.Description))
		}
	}

	if len(v.Homestays) > 0 {
		b.WriteString(styles.Section.Render("Homestay"))
		b.WriteString("\n")
		for _, h := range v.Homestays {
			fmt.Fprintf(&b, "• %s  %s\n", h.Name, styles.Key.Render(h.PriceLabel()+"/malam"))
		}
	}

	if len(v.Locations) > 0 {
		b.WriteString(styles.Section.Render("Lokasi"))
		b.WriteString("\n")
		for _, l := range v.Locations {
			fmt.Fprintf(&b, "• %s\n  %s\n", l.Name, styles.Muted.Render(l.MapURL))
		}
	}

	if len(v.Websites) > 0 {
		b.WriteString(styles.Section.Render("Informasi Resmi"))
		b.WriteString("\n")
		for _, w := range v.Websites {
			fmt.Fprintf(&b, "• %s  %s\n", w.Name, styles.Muted.Render(w.URL))
		}
	}

	if v.Tip != "" {
		b.WriteString("\n")
		b.WriteString(styles.IntroCard.Width(width - 2).Render("Tips: " + v.Tip))
		b.WriteString("\n")
	}
	if v.Disclaimer != "" {
		b.WriteString(styles.Muted.Render(v.Disclaimer))
		b.WriteString("\n")
	}
	return b.String()
}
