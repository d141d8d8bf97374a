package seed

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/arnavshah/crewplan-api/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Data is the initial content of every collection
type Data struct {
	Projects    []models.Project    `yaml:"projects"`
	Staff       []models.Staff      `yaml:"staff"`
	Tasks       []models.Task       `yaml:"tasks"`
	Assignments []models.Assignment `yaml:"assignments"`
}

// Default returns the embedded sample data
func Default() (Data, error) {
	return Parse(defaultSeed)
}

// Load reads seed data from path, or the embedded sample when path is empty
func Load(path string) (Data, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes YAML seed data and checks ids are unique per collection
func Parse(raw []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("failed to parse seed: %w", err)
	}

	if err := uniqueIDs("projects", len(d.Projects), func(i int) int { return d.Projects[i].ID }); err != nil {
		return Data{}, err
	}
	if err := uniqueIDs("staff", len(d.Staff), func(i int) int { return d.Staff[i].ID }); err != nil {
		return Data{}, err
	}
	if err := uniqueIDs("tasks", len(d.Tasks), func(i int) int { return d.Tasks[i].ID }); err != nil {
		return Data{}, err
	}
	if err := uniqueIDs("assignments", len(d.Assignments), func(i int) int { return d.Assignments[i].ID }); err != nil {
		return Data{}, err
	}
	return d, nil
}

func uniqueIDs(collection string, n int, id func(int) int) error {
	seen := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		v := id(i)
		if v <= 0 {
			return fmt.Errorf("%s: row %d has invalid id %d", collection, i, v)
		}
		if seen[v] {
			return fmt.Errorf("%s: duplicate id %d", collection, v)
		}
		seen[v] = true
	}
	return nil
}
