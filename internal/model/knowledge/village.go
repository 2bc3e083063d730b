package knowledge

import "github.com/dustin/go-humanize"

// Village captures the static facts the assistant is allowed to talk about.
// It is plain configuration data: the prompt builder and the info sidebar
// both render from it.
type Village struct {
	Name        string      `json:"name" yaml:"name"`
	Region      string      `json:"region" yaml:"region"`
	Summary     string      `json:"summary" yaml:"summary"`
	Focus       string      `json:"focus" yaml:"focus"`
	Assistant   Assistant   `json:"assistant" yaml:"assistant"`
	Highlights  []Highlight `json:"highlights" yaml:"highlights"`
	Attractions string      `json:"attractions" yaml:"attractions"`
	Packages    []Package   `json:"packages" yaml:"packages"`
	Homestays   []Homestay  `json:"homestays" yaml:"homestays"`
	Culture     string      `json:"culture" yaml:"culture"`
	Access      string      `json:"access" yaml:"access"`
	Locations   []Location  `json:"locations" yaml:"locations"`
	Websites    []Website   `json:"websites" yaml:"websites"`
	Contact     string      `json:"contact" yaml:"contact"`
	Tip         string      `json:"tip" yaml:"tip"`
	Intro       Intro       `json:"intro" yaml:"intro"`
	Suggestions []string    `json:"suggestions" yaml:"suggestions"`
	Disclaimer  string      `json:"disclaimer" yaml:"disclaimer"`
}

// Assistant describes the persona that answers visitors.
type Assistant struct {
	Name       string   `json:"name" yaml:"name"`
	Welcome    string   `json:"welcome" yaml:"welcome"`
	StyleGuide []string `json:"styleGuide" yaml:"styleGuide"`
	Emojis     []string `json:"emojis,omitempty" yaml:"emojis"`
	Campaign   string   `json:"campaign,omitempty" yaml:"campaign"`
}

// Highlight is a short selling point shown in the sidebar.
type Highlight struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Package is a bookable tour package.
type Package struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Homestay is a lodging option with its nightly price.
type Homestay struct {
	Name        string `json:"name" yaml:"name"`
	Price       int    `json:"price" yaml:"price"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	SuitableFor string `json:"suitableFor,omitempty" yaml:"suitableFor"`
}

// Location is a point of interest with its map link.
type Location struct {
	Name    string `json:"name" yaml:"name"`
	MapURL  string `json:"mapUrl" yaml:"mapUrl"`
	Address string `json:"address,omitempty" yaml:"address"`
}

// Website is an official information source.
type Website struct {
	Name  string `json:"name" yaml:"name"`
	URL   string `json:"url" yaml:"url"`
	Usage string `json:"usage,omitempty" yaml:"usage"`
}

// Intro is the banner shown before the first exchange.
type Intro struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// PriceLabel formats the nightly price in rupiah, e.g. "Rp 500.000".
func (h Homestay) PriceLabel() string {
	return FormatRupiah(h.Price)
}

// FormatRupiah renders an amount with dot thousands separators.
func FormatRupiah(amount int) string {
	if amount < 0 {
		return "-Rp " + humanize.FormatInteger("#.###,", -amount)
	}
	return "Rp " + humanize.FormatInteger("#.###,", amount)
}
