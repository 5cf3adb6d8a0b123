// Package seed embeds a small built-in tool catalog used in development
// when no Supabase credentials are configured.
package seed

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/toolhub-ai/toolhub/pkg/models"
)

//go:embed seed.yaml
var seedRawData []byte

// seedFile is the top-level structure of the embedded YAML.
type seedFile struct {
	Tools []models.RawTool `yaml:"tools"`
}

// Catalog provides lazy-loaded access to the embedded seed tools.
type Catalog struct {
	once  sync.Once
	tools []models.RawTool
	err   error
}

// New creates a Catalog that will parse the embedded YAML on first access.
func New() *Catalog {
	return &Catalog{}
}

// Tools returns a copy of all seed records.
func (c *Catalog) Tools() ([]models.RawTool, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]models.RawTool, len(c.tools))
	copy(cp, c.tools)
	return cp, nil
}

// load parses the embedded YAML seed data.
func (c *Catalog) load() {
	var f seedFile
	if err := yaml.Unmarshal(seedRawData, &f); err != nil {
		c.err = fmt.Errorf("seed: parse yaml: %w", err)
		return
	}
	c.tools = f.Tools
}
