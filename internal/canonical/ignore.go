package canonical

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kennyg/scribe/internal/syncerr"
)

// IgnoreAction is the kind of access an ignore pattern denies.
type IgnoreAction string

const (
	ActionRead  IgnoreAction = "read"
	ActionWrite IgnoreAction = "write"
	ActionEdit  IgnoreAction = "edit"
)

// IgnorePattern is one denied path pattern with the actions it denies.
type IgnorePattern struct {
	Pattern string
	Actions []IgnoreAction
}

// IgnoreFile is the canonical ignore list. One fixed file per source tree.
//
// Line syntax: an optional bracketed action list followed by a gitignore
// style pattern, e.g.
//
//	tmp/
//	[write,edit] secrets/**
//
// A bare pattern denies read access; the default is recorded as a warning
// because an authored action list is usually intended.
type IgnoreFile struct {
	Patterns []IgnorePattern
	Warnings []string
}

// ParseIgnore parses the canonical ignore file. Blank lines and # comments
// are skipped.
func ParseIgnore(path string, content []byte) (*IgnoreFile, error) {
	file := &IgnoreFile{}
	for i, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pattern := IgnorePattern{}
		if strings.HasPrefix(line, "[") {
			end := strings.Index(line, "]")
			if end == -1 {
				return nil, &syncerr.ParseError{Path: path, Err: fmt.Errorf("line %d: unterminated action list", i+1)}
			}
			for _, a := range strings.Split(line[1:end], ",") {
				action := IgnoreAction(strings.TrimSpace(a))
				switch action {
				case ActionRead, ActionWrite, ActionEdit:
					pattern.Actions = append(pattern.Actions, action)
				default:
					return nil, &syncerr.ValidationError{Path: path, Field: "actions", Reason: fmt.Sprintf("line %d: unknown action %q", i+1, action)}
				}
			}
			pattern.Pattern = strings.TrimSpace(line[end+1:])
		} else {
			pattern.Pattern = line
			pattern.Actions = []IgnoreAction{ActionRead}
			file.Warnings = append(file.Warnings, fmt.Sprintf("line %d: no action tag on %q, defaulting to read", i+1, line))
		}

		if pattern.Pattern == "" {
			return nil, &syncerr.ValidationError{Path: path, Field: "pattern", Reason: fmt.Sprintf("line %d: action list without a pattern", i+1)}
		}
		if !doublestar.ValidatePattern(strings.TrimSuffix(pattern.Pattern, "/")) {
			return nil, &syncerr.ValidationError{Path: path, Field: "pattern", Reason: fmt.Sprintf("line %d: invalid pattern %q", i+1, pattern.Pattern)}
		}
		file.Patterns = append(file.Patterns, pattern)
	}
	return file, nil
}

// Serialize renders the ignore list back to canonical file content.
func (f *IgnoreFile) Serialize() ([]byte, error) {
	var b strings.Builder
	for _, p := range f.Patterns {
		if len(p.Actions) == 1 && p.Actions[0] == ActionRead {
			b.WriteString(p.Pattern)
		} else {
			names := make([]string, len(p.Actions))
			for i, a := range p.Actions {
				names[i] = string(a)
			}
			b.WriteString("[" + strings.Join(names, ",") + "] " + p.Pattern)
		}
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

// Denies reports whether action appears in the pattern's action list.
func (p IgnorePattern) Denies(action IgnoreAction) bool {
	for _, a := range p.Actions {
		if a == action {
			return true
		}
	}
	return false
}
