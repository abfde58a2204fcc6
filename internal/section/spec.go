package section

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec is the file representation of a section.
type Spec struct {
	Type string `json:"type" yaml:"type"`

	B float64 `json:"b,omitempty" yaml:"b,omitempty"`
	H float64 `json:"h,omitempty" yaml:"h,omitempty"`
	D float64 `json:"d,omitempty" yaml:"d,omitempty"`

	Area float64 `json:"area,omitempty" yaml:"area,omitempty"`
	Iy   float64 `json:"iy,omitempty" yaml:"iy,omitempty"`
	Iz   float64 `json:"iz,omitempty" yaml:"iz,omitempty"`
	J    float64 `json:"j,omitempty" yaml:"j,omitempty"`

	Vertices []Point `json:"vertices,omitempty" yaml:"vertices,omitempty"`

	From *Spec `json:"from,omitempty" yaml:"from,omitempty"`
	To   *Spec `json:"to,omitempty" yaml:"to,omitempty"`
}

// Build converts the spec into a validated Section.
func (s *Spec) Build() (Section, error) {
	var sec Section
	switch strings.ToLower(s.Type) {
	case "rectangular", "rect":
		sec = Rectangular{B: s.B, H: s.H}
	case "circular", "circle":
		sec = Circular{D: s.D}
	case "generic":
		sec = Generic{Props: Properties{Area: s.Area, Iy: s.Iy, Iz: s.Iz, J: s.J}}
	case "polygon":
		sec = Polygon{Vertices: s.Vertices, Torsion: s.J}
	case "tapered":
		if s.From == nil || s.To == nil {
			return nil, invalid("tapered section needs both from and to")
		}
		from, err := s.From.Build()
		if err != nil {
			return nil, err
		}
		to, err := s.To.Build()
		if err != nil {
			return nil, err
		}
		sec = Tapered{From: from, To: to}
	default:
		return nil, invalid("unknown section type %q", s.Type)
	}
	if err := sec.Validate(); err != nil {
		return nil, err
	}
	return sec, nil
}

// LoadFromFile reads a section spec from a JSON or YAML file and builds it.
func LoadFromFile(path string) (*Spec, Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var s Spec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	default:
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	sec, err := s.Build()
	if err != nil {
		return nil, nil, err
	}
	return &s, sec, nil
}
