package canonical

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kennyg/scribe/internal/syncerr"
)

// Canonical hook event names. Tool adapters translate these into each
// tool's own event vocabulary.
const (
	EventPreToolUse       = "preToolUse"
	EventPostToolUse      = "postToolUse"
	EventUserPromptSubmit = "userPromptSubmit"
	EventSessionStart     = "sessionStart"
	EventSessionEnd       = "sessionEnd"
	EventStop             = "stop"
)

// KnownHookEvents returns the canonical event vocabulary.
func KnownHookEvents() []string {
	return []string{
		EventPreToolUse,
		EventPostToolUse,
		EventUserPromptSubmit,
		EventSessionStart,
		EventSessionEnd,
		EventStop,
	}
}

// HookCommand is one hook entry: a command run when the event fires,
// optionally limited to tool names matching Matcher.
type HookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Matcher string `json:"matcher,omitempty"`
}

// HooksConfig is the canonical event map, read from .scribe/hooks.json.
type HooksConfig struct {
	Hooks map[string][]HookCommand
}

type hooksDocument struct {
	Hooks map[string][]HookCommand `json:"hooks"`
}

// ParseHooks parses the canonical hooks file. Unknown event names are an
// authoring error; a typo would otherwise silently drop the hook on every
// target.
func ParseHooks(path string, content []byte) (*HooksConfig, error) {
	var doc hooksDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, &syncerr.ParseError{Path: path, Err: err}
	}

	known := make(map[string]bool)
	for _, ev := range KnownHookEvents() {
		known[ev] = true
	}
	for event, cmds := range doc.Hooks {
		if !known[event] {
			return nil, &syncerr.ValidationError{Path: path, Field: "hooks", Reason: fmt.Sprintf("unknown event %q", event)}
		}
		for i, cmd := range cmds {
			if cmd.Type != "command" {
				return nil, &syncerr.ValidationError{Path: path, Field: event, Reason: fmt.Sprintf("entry %d: unsupported hook type %q", i, cmd.Type)}
			}
			if cmd.Command == "" {
				return nil, &syncerr.ValidationError{Path: path, Field: event, Reason: fmt.Sprintf("entry %d: command is required", i)}
			}
		}
	}
	return &HooksConfig{Hooks: doc.Hooks}, nil
}

// Serialize renders the hooks config back to canonical file content.
func (c *HooksConfig) Serialize() ([]byte, error) {
	data, err := json.MarshalIndent(&hooksDocument{Hooks: c.Hooks}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// EventNames returns sorted event names for deterministic output.
func (c *HooksConfig) EventNames() []string {
	events := make([]string, 0, len(c.Hooks))
	for ev := range c.Hooks {
		events = append(events, ev)
	}
	sort.Strings(events)
	return events
}

// IsEmpty reports whether the config holds no hooks.
func (c *HooksConfig) IsEmpty() bool {
	return c == nil || len(c.Hooks) == 0
}
