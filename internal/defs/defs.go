// Package defs loads declarative swarm definitions from YAML files and
// builds graphs from them. Definitions are the file-based counterpart of
// the create/add_agent/add_edge actions.
package defs

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// SwarmDef describes one graph and its agents as declared in a YAML file.
type SwarmDef struct {
	// Name is the graph name. Required.
	Name string `yaml:"name"`
	// Agents lists the agents to create, in declaration order.
	Agents []AgentDef `yaml:"agents"`
}

// AgentDef describes one agent inside a swarm definition. DependsOn and
// Parent reference other agents by name.
type AgentDef struct {
	Name         string   `yaml:"name"`
	Role         string   `yaml:"role"`
	Capabilities []string `yaml:"capabilities"`
	DependsOn    []string `yaml:"depends_on"`
	Parent       string   `yaml:"parent"`
}

// Parse parses and validates a swarm definition.
func Parse(data []byte) (*SwarmDef, error) {
	var def SwarmDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse swarm definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks referential integrity. Agent names must be unique and
// non-empty, and depends_on and parent entries must reference declared
// agents. Cycles are not checked here; the planner reports those.
func (d *SwarmDef) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("swarm definition missing name")
	}

	seen := make(map[string]bool, len(d.Agents))
	for _, a := range d.Agents {
		if a.Name == "" {
			return fmt.Errorf("swarm %s: agent with empty name", d.Name)
		}
		if seen[a.Name] {
			return fmt.Errorf("swarm %s: duplicate agent %s", d.Name, a.Name)
		}
		seen[a.Name] = true
	}

	for _, a := range d.Agents {
		for _, dep := range a.DependsOn {
			if dep == a.Name {
				return fmt.Errorf("swarm %s: agent %s depends on itself", d.Name, a.Name)
			}
			if !seen[dep] {
				return fmt.Errorf("swarm %s: agent %s depends on undeclared agent %s", d.Name, a.Name, dep)
			}
		}
		if a.Parent == a.Name && a.Parent != "" {
			return fmt.Errorf("swarm %s: agent %s is its own parent", d.Name, a.Name)
		}
		if a.Parent != "" && !seen[a.Parent] {
			return fmt.Errorf("swarm %s: agent %s has undeclared parent %s", d.Name, a.Name, a.Parent)
		}
	}

	return nil
}

// LoadFile reads and parses one YAML definition file.
func LoadFile(path string) (*SwarmDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read swarm definition: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// LoadDir loads every *.yaml and *.yml file in dir, in file name order.
func LoadDir(dir string) ([]*SwarmDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read definitions dir: %w", err)
	}

	var defs []*SwarmDef
	for _, e := range entries {
		if e.IsDir() || !isDefFile(e.Name()) {
			continue
		}
		def, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// isDefFile reports whether a file name looks like a swarm definition.
func isDefFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}
