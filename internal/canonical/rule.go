package canonical

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/kennyg/scribe/internal/syncerr"
)

// Rule is a canonical coding-assistant rule: a frontmatter block and a
// markdown body. Exactly one rule per source tree may set root, the single
// top-level instructions artifact.
type Rule struct {
	Name   string // file name under rules/, extension stripped
	RelDir string // subdirectory under rules/, "" for top level
	Front  RuleFrontmatter
	Body   string
}

// RuleFrontmatter is the canonical rule schema.
type RuleFrontmatter struct {
	Root        bool     `yaml:"root,omitempty"`
	Targets     []string `yaml:"targets,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Globs       []string `yaml:"globs,omitempty"`
}

// ParseRule parses one canonical rule file. Missing targets default to the
// wildcard; missing root defaults to false. Invalid glob patterns are a
// validation failure.
func ParseRule(path, name, relDir string, content []byte) (*Rule, error) {
	rule := &Rule{Name: name, RelDir: relDir}
	body, err := DecodeFrontmatter(content, &rule.Front)
	if err != nil {
		return nil, &syncerr.ParseError{Path: path, Err: err}
	}
	rule.Body = body

	if len(rule.Front.Targets) == 0 {
		rule.Front.Targets = []string{"*"}
	}
	for _, g := range rule.Front.Globs {
		if !doublestar.ValidatePattern(g) {
			return nil, &syncerr.ValidationError{Path: path, Field: "globs", Reason: "invalid glob pattern " + g}
		}
	}
	return rule, nil
}

// Serialize renders the rule back to canonical file content.
func (r *Rule) Serialize() ([]byte, error) {
	return EncodeFrontmatter(&r.Front, r.Body)
}

// IsTargeted reports whether this rule selects the given tool.
func (r *Rule) IsTargeted(toolID string) bool {
	return TargetsInclude(r.Front.Targets, toolID)
}
