package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// FileName is the scene file looked up inside a project directory.
const FileName = "scene.yaml"

// Load reads a scene from a YAML file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return Parse(data)
}

// Parse decodes scene YAML. Structures without an ID get a random one.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scene YAML: %w", err)
	}
	for i := range s.Structures {
		if s.Structures[i].ID == "" {
			s.Structures[i].ID = uuid.NewString()
		}
	}
	return &s, nil
}

// LoadProject loads the scene from a project directory. A project without
// scene.yaml gets an empty scene named after the directory.
func LoadProject(projectDir string) (*Scene, error) {
	path := filepath.Join(projectDir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Scene{Name: filepath.Base(projectDir)}, nil
	}
	return Load(path)
}
