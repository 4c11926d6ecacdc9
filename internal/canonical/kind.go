// Package canonical defines the tool-agnostic source representation of
// AI-assistant artifacts and the parsing of the .scribe source tree.
// Every supported tool format converts to and from these types.
package canonical

// Kind identifies one artifact kind in the canonical source tree.
type Kind string

const (
	KindRules     Kind = "rules"
	KindIgnore    Kind = "ignore"
	KindMCP       Kind = "mcp"
	KindCommands  Kind = "commands"
	KindSubagents Kind = "subagents"
	KindSkills    Kind = "skills"
	KindHooks     Kind = "hooks"
)

// AllKinds returns every artifact kind in processing order. The order is
// fixed so repeated runs report features deterministically.
func AllKinds() []Kind {
	return []Kind{
		KindRules,
		KindIgnore,
		KindMCP,
		KindCommands,
		KindSubagents,
		KindSkills,
		KindHooks,
	}
}

// IsValid returns true if the kind is recognized.
func (k Kind) IsValid() bool {
	for _, known := range AllKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// TargetsInclude reports whether a targets list selects the given tool id.
// An empty list and the wildcard "*" both select every tool.
func TargetsInclude(targets []string, toolID string) bool {
	if len(targets) == 0 {
		return true
	}
	for _, t := range targets {
		if t == "*" || t == toolID {
			return true
		}
	}
	return false
}
