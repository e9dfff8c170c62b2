package plugin

import "fmt"

// Metadata describes a plugin to the host: identity, help surface, and
// the flags that drive parameter collection. The contract never mutates
// it after construction. GitRepo is informational and never validated;
// DevOnly gates availability but enforcement belongs to the host.
type Metadata struct {
	Name        string   `json:"name" yaml:"name"`
	Prompt      string   `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	NeedsArgs   bool     `json:"needs_args" yaml:"needs_args"`
	Commands    []string `json:"commands,omitempty" yaml:"commands,omitempty"`
	HelpText    string   `json:"help_text,omitempty" yaml:"help_text,omitempty"`
	DevOnly     bool     `json:"dev_only" yaml:"dev_only"`
	GitRepo     string   `json:"git_repo,omitempty" yaml:"git_repo,omitempty"`
}

func (m Metadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	seen := map[string]struct{}{}
	for _, command := range m.Commands {
		if command == "" {
			return fmt.Errorf("plugin command name must not be empty")
		}
		if _, ok := seen[command]; ok {
			return fmt.Errorf("duplicate command: %s", command)
		}
		seen[command] = struct{}{}
	}
	return nil
}

func (m Metadata) HasCommand(name string) bool {
	for _, c := range m.Commands {
		if c == name {
			return true
		}
	}
	return false
}
