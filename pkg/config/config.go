package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up inside a project directory.
const FileName = "aligner.yaml"

// Default returns the stock tuning of the aligner.
func Default() Config {
	return Config{
		Grid: Grid{
			NumRotationalSegments: 24,
			NumSteps:              12,
			NumSigDots:            3,
			MinDistToCheck:        12,
			MaxDistToCheck:        31,
		},
		Overlay: Overlay{
			Group:            "Connections",
			HoverHeight:      2,
			SignificantSize:  0.75,
			MinorSize:        0.25,
			LineWidth:        0.25,
			SignificantColor: "blue",
			MinorColor:       "red",
			LineColorA:       "blue",
			LineColorB:       "green",
			QueryEpsilon:     0.1,
			Staleness:        StaleKeep,
		},
		World: World{
			RayLength:    150,
			LayerMask:    256,
			LinkMin:      10,
			LinkMax:      30,
			SizeRadii:    []float64{4, 5.5, 7, 8.5, 10},
			LinkableKind: []string{"module", "connection_hub"},
		},
	}
}

// Load reads a config from a YAML file. Fields missing from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	return &cfg, nil
}

// LoadProject loads the config from a project directory.
// A project without aligner.yaml runs on defaults.
func LoadProject(projectDir string) (*Config, error) {
	path := filepath.Join(projectDir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		return &cfg, nil
	}
	return Load(path)
}
