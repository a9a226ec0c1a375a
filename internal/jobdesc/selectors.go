package jobdesc

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed selectors.yaml
var defaultSelectorsYAML []byte

// Selectors drives the extraction cascade.
type Selectors struct {
	Remove             []string `yaml:"remove"`
	Description        []string `yaml:"description"`
	FallbackContainers []string `yaml:"fallback_containers"`
	FallbackBlocks     string   `yaml:"fallback_blocks"`
}

// ParseSelectors decodes a selector file.
func ParseSelectors(raw []byte) (Selectors, error) {
	var s Selectors
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Selectors{}, fmt.Errorf("parse selectors: %w", err)
	}
	if len(s.Description) == 0 {
		return Selectors{}, fmt.Errorf("parse selectors: no description selectors")
	}
	if strings.TrimSpace(s.FallbackBlocks) == "" {
		s.FallbackBlocks = "p, li, div"
	}
	return s, nil
}

// DefaultSelectors returns the built-in cascade.
func DefaultSelectors() Selectors {
	s, err := ParseSelectors(defaultSelectorsYAML)
	if err != nil {
		panic(err)
	}
	return s
}
