package tables

import (
	"fmt"
	"os"

	"github.com/rpgo/irs-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// yamlTable is the on-disk shape of a YAML bracket table.
type yamlTable struct {
	Name     string              `yaml:"name,omitempty"`
	Brackets []domain.BracketRow `yaml:"brackets"`
}

// LoadYAML loads a bracket table from a YAML file with a top-level "brackets" list.
func LoadYAML(path string) (*domain.BracketTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read file %s: %v", domain.ErrConfiguration, path, err)
	}
	var t yamlTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML %s: %v", domain.ErrConfiguration, path, err)
	}
	name := t.Name
	if name == "" {
		name = path
	}
	return domain.NewBracketTable(name, t.Brackets)
}

// MarshalYAML renders a table in the format LoadYAML reads.
func MarshalYAML(table *domain.BracketTable) ([]byte, error) {
	return yaml.Marshal(yamlTable{Name: table.Name(), Brackets: table.Rows()})
}
