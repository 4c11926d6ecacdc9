package canonical

import (
	"github.com/kennyg/scribe/internal/syncerr"
)

// SkillFile is one auxiliary file shipped alongside a skill's SKILL.md,
// copied verbatim to the tool side.
type SkillFile struct {
	RelPath string
	Content []byte
}

// Skill is a canonical skill: a directory named after the skill holding a
// SKILL.md plus an arbitrary set of auxiliary files.
type Skill struct {
	Name  string // directory name under skills/
	Front SkillFrontmatter
	Body  string
	Aux   []SkillFile
}

// SkillFrontmatter is the canonical skill schema.
type SkillFrontmatter struct {
	Name        string   `yaml:"name,omitempty"`
	Description string   `yaml:"description"`
	Targets     []string `yaml:"targets,omitempty"`
}

// ParseSkill parses a skill's SKILL.md. Auxiliary files are attached by
// the loader after parsing.
func ParseSkill(path, dirName string, content []byte) (*Skill, error) {
	skill := &Skill{Name: dirName}
	body, err := DecodeFrontmatter(content, &skill.Front)
	if err != nil {
		return nil, &syncerr.ParseError{Path: path, Err: err}
	}
	skill.Body = body

	if skill.Front.Description == "" {
		return nil, &syncerr.ValidationError{Path: path, Field: "description", Reason: "required"}
	}
	if skill.Front.Name == "" {
		skill.Front.Name = dirName
	}
	if len(skill.Front.Targets) == 0 {
		skill.Front.Targets = []string{"*"}
	}
	return skill, nil
}

// Serialize renders the skill's SKILL.md back to canonical file content.
func (s *Skill) Serialize() ([]byte, error) {
	return EncodeFrontmatter(&s.Front, s.Body)
}

// IsTargeted reports whether this skill selects the given tool.
func (s *Skill) IsTargeted(toolID string) bool {
	return TargetsInclude(s.Front.Targets, toolID)
}
