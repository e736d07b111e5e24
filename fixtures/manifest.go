package fixtures

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/arbor"
)

// Manifest describes a graph to build declaratively, the way a benchmark
// config file or a test data fixture would, rather than calling Chain/
// Cycle/Star/Complete/Bipartite directly from Go code.
type Manifest struct {
	// Kind selects the topology: "chain", "cycle", "star", "complete", or
	// "bipartite".
	Kind string `yaml:"kind"`
	// N is the object count for chain/cycle/star/complete.
	N int `yaml:"n,omitempty"`
	// Left and Right are the partition sizes for bipartite; N is ignored
	// when Kind is "bipartite".
	Left  int `yaml:"left,omitempty"`
	Right int `yaml:"right,omitempty"`
}

// ParseManifest decodes a single YAML document into a Manifest.
func ParseManifest(doc []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(doc, &m); err != nil {
		return Manifest{}, fmt.Errorf("fixtures: parsing manifest: %w", err)
	}

	return m, nil
}

// Build constructs the graph a Manifest describes.
func Build(m Manifest) (*arbor.Object, error) {
	switch m.Kind {
	case "chain":
		return Chain(m.N)
	case "cycle":
		return Cycle(m.N)
	case "star":
		return Star(m.N)
	case "complete":
		return Complete(m.N)
	case "bipartite":
		return Bipartite(m.Left, m.Right)
	default:
		return nil, fmt.Errorf("fixtures: kind=%q: %w", m.Kind, ErrUnknownTopology)
	}
}

// FromManifest decodes a YAML document and builds the graph it describes
// in one step.
func FromManifest(doc []byte) (*arbor.Object, error) {
	m, err := ParseManifest(doc)
	if err != nil {
		return nil, err
	}

	return Build(m)
}
