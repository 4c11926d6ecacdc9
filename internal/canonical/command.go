package canonical

import (
	"github.com/kennyg/scribe/internal/syncerr"
)

// Command is a canonical slash command. The description is required;
// Claude-specific knobs live in an optional extension block so other tools
// can ignore them cleanly.
type Command struct {
	Name   string
	RelDir string
	Front  CommandFrontmatter
	Body   string
}

// CommandFrontmatter is the canonical command schema.
type CommandFrontmatter struct {
	Description string            `yaml:"description"`
	Targets     []string          `yaml:"targets,omitempty"`
	Claudecode  *ClaudeCommandExt `yaml:"claudecode,omitempty"`
}

// ClaudeCommandExt carries fields only Claude Code understands.
type ClaudeCommandExt struct {
	Model        string   `yaml:"model,omitempty"`
	AllowedTools []string `yaml:"allowed-tools,omitempty"`
}

// ParseCommand parses one canonical command file. A missing description is
// an authoring error, not a defaultable field.
func ParseCommand(path, name, relDir string, content []byte) (*Command, error) {
	cmd := &Command{Name: name, RelDir: relDir}
	body, err := DecodeFrontmatter(content, &cmd.Front)
	if err != nil {
		return nil, &syncerr.ParseError{Path: path, Err: err}
	}
	cmd.Body = body

	if cmd.Front.Description == "" {
		return nil, &syncerr.ValidationError{Path: path, Field: "description", Reason: "required"}
	}
	if len(cmd.Front.Targets) == 0 {
		cmd.Front.Targets = []string{"*"}
	}
	return cmd, nil
}

// Serialize renders the command back to canonical file content.
func (c *Command) Serialize() ([]byte, error) {
	return EncodeFrontmatter(&c.Front, c.Body)
}

// IsTargeted reports whether this command selects the given tool.
func (c *Command) IsTargeted(toolID string) bool {
	return TargetsInclude(c.Front.Targets, toolID)
}
