/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package ops

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
)

// CommandGroup represents the operational classification of commands
type CommandGroup string

const (
	GroupPipeline CommandGroup = "pipeline" // generate, parse: read inputs and write a file
	GroupInspect  CommandGroup = "inspect"  // validate, classify: read-only checks
	GroupSupport  CommandGroup = "support"  // templates, version
)

// Groups lists the command groups in help order.
func Groups() []CommandGroup {
	return []CommandGroup{GroupPipeline, GroupInspect, GroupSupport}
}

// Title returns the help heading of a group.
func (g CommandGroup) Title() string {
	switch g {
	case GroupPipeline:
		return "Pipeline Commands"
	case GroupInspect:
		return "Inspection Commands"
	case GroupSupport:
		return "Support Commands"
	default:
		return string(g)
	}
}

// CommandRegistration represents a registered command with its classification
type CommandRegistration struct {
	Name        string
	Group       CommandGroup
	Command     *cobra.Command
	Description string
}

// Registry manages command classifications and registrations
type Registry struct {
	mu         sync.RWMutex
	commands   map[string]*CommandRegistration
	groupIndex map[CommandGroup][]*CommandRegistration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:   make(map[string]*CommandRegistration),
		groupIndex: make(map[CommandGroup][]*CommandRegistration),
	}
}

var globalRegistry = NewRegistry()

// GetRegistry returns the global command registry
func GetRegistry() *Registry {
	return globalRegistry
}

// RegisterCommand registers a command with its operational classification
func RegisterCommand(name string, group CommandGroup, cmd *cobra.Command, description string) error {
	return GetRegistry().Register(CommandRegistration{
		Name:        name,
		Group:       group,
		Command:     cmd,
		Description: description,
	})
}

// Register adds a command to the registry. Names are unique and the group
// must be one of Groups().
func (r *Registry) Register(reg CommandRegistration) error {
	if reg.Name == "" {
		return fmt.Errorf("command name is required")
	}
	if !knownGroup(reg.Group) {
		return fmt.Errorf("command %s: unknown group %q", reg.Name, reg.Group)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[reg.Name]; exists {
		return fmt.Errorf("command %s already registered", reg.Name)
	}
	entry := reg
	r.commands[reg.Name] = &entry
	r.groupIndex[reg.Group] = append(r.groupIndex[reg.Group], &entry)
	return nil
}

func knownGroup(g CommandGroup) bool {
	for _, known := range Groups() {
		if g == known {
			return true
		}
	}
	return false
}

// GetCommand returns a registered command by name
func (r *Registry) GetCommand(name string) (*CommandRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetCommandsByGroup returns the commands of a group in registration order
func (r *Registry) GetCommandsByGroup(group CommandGroup) []*CommandRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*CommandRegistration(nil), r.groupIndex[group]...)
}

// ListGroups returns all command groups and their command counts
func (r *Registry) ListGroups() map[CommandGroup]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[CommandGroup]int)
	for group, commands := range r.groupIndex {
		result[group] = len(commands)
	}
	return result
}
