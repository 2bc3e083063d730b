package knowledge

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidKnowledge marks a knowledge document that is missing required fields.
var ErrInvalidKnowledge = errors.New("invalid knowledge document")

// LoadFile reads a YAML knowledge document from disk.
func LoadFile(path string) (Village, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Village{}, fmt.Errorf("read knowledge file %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML knowledge document.
func Parse(raw []byte) (Village, error) {
	var village Village
	if err := yaml.Unmarshal(raw, &village); err != nil {
		return Village{}, fmt.Errorf("decode knowledge: %w", err)
	}
	if err := village.Validate(); err != nil {
		return Village{}, err
	}
	return village, nil
}

// Validate checks the fields every prompt and welcome message depends on.
func (v Village) Validate() error {
	var missing []string
	if strings.TrimSpace(v.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(v.Assistant.Name) == "" {
		missing = append(missing, "assistant.name")
	}
	if strings.TrimSpace(v.Assistant.Welcome) == "" {
		missing = append(missing, "assistant.welcome")
	}
	for i, loc := range v.Locations {
		if loc.Name == "" || loc.MapURL == "" {
			missing = append(missing, fmt.Sprintf("locations[%d]", i))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidKnowledge, strings.Join(missing, ", "))
	}
	return nil
}

// Load returns the knowledge at path, or the built-in seed when path is empty.
func Load(path string) (Village, error) {
	if strings.TrimSpace(path) == "" {
		return Seed(), nil
	}
	return LoadFile(path)
}
