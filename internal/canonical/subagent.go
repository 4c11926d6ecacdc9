package canonical

import (
	"github.com/kennyg/scribe/internal/syncerr"
)

// Subagent is a canonical subagent definition. The frontmatter name
// defaults to the file name so authors only state it when it differs.
type Subagent struct {
	Name   string
	RelDir string
	Front  SubagentFrontmatter
	Body   string
}

// SubagentFrontmatter is the canonical subagent schema.
type SubagentFrontmatter struct {
	Name        string             `yaml:"name,omitempty"`
	Description string             `yaml:"description"`
	Targets     []string           `yaml:"targets,omitempty"`
	Claudecode  *ClaudeSubagentExt `yaml:"claudecode,omitempty"`
}

// ClaudeSubagentExt carries fields only Claude Code understands.
type ClaudeSubagentExt struct {
	Model string `yaml:"model,omitempty"`
}

// ParseSubagent parses one canonical subagent file.
func ParseSubagent(path, name, relDir string, content []byte) (*Subagent, error) {
	sub := &Subagent{Name: name, RelDir: relDir}
	body, err := DecodeFrontmatter(content, &sub.Front)
	if err != nil {
		return nil, &syncerr.ParseError{Path: path, Err: err}
	}
	sub.Body = body

	if sub.Front.Description == "" {
		return nil, &syncerr.ValidationError{Path: path, Field: "description", Reason: "required"}
	}
	if sub.Front.Name == "" {
		sub.Front.Name = name
	}
	if len(sub.Front.Targets) == 0 {
		sub.Front.Targets = []string{"*"}
	}
	return sub, nil
}

// Serialize renders the subagent back to canonical file content.
func (s *Subagent) Serialize() ([]byte, error) {
	return EncodeFrontmatter(&s.Front, s.Body)
}

// IsTargeted reports whether this subagent selects the given tool.
func (s *Subagent) IsTargeted(toolID string) bool {
	return TargetsInclude(s.Front.Targets, toolID)
}
