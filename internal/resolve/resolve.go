// Package resolve expands wildcard target and feature selections against
// the tool registry and the known artifact kinds. Unknown ids are
// configuration errors, never silently dropped.
package resolve

import (
	"fmt"

	"github.com/kennyg/scribe/internal/adapter"
	"github.com/kennyg/scribe/internal/canonical"
)

// Targets expands the configured target list. ["*"] (or an empty list)
// expands to the full registry in its stable order; an explicit list is
// returned in caller order after checking every id against the registry.
func Targets(configured []string) ([]*adapter.Tool, error) {
	if len(configured) == 0 || (len(configured) == 1 && configured[0] == "*") {
		return adapter.Registry(), nil
	}

	tools := make([]*adapter.Tool, 0, len(configured))
	for _, id := range configured {
		if id == "*" {
			return nil, fmt.Errorf("wildcard target cannot be combined with explicit targets")
		}
		t := adapter.Lookup(id)
		if t == nil {
			return nil, fmt.Errorf("unknown target %q (known: %v)", id, adapter.IDs())
		}
		tools = append(tools, t)
	}
	return tools, nil
}

// Features expands the configured feature list against the known artifact
// kinds, preserving caller order for explicit lists.
func Features(configured []string) ([]canonical.Kind, error) {
	if len(configured) == 0 || (len(configured) == 1 && configured[0] == "*") {
		return canonical.AllKinds(), nil
	}

	kinds := make([]canonical.Kind, 0, len(configured))
	for _, f := range configured {
		if f == "*" {
			return nil, fmt.Errorf("wildcard feature cannot be combined with explicit features")
		}
		kind := canonical.Kind(f)
		if !kind.IsValid() {
			return nil, fmt.Errorf("unknown feature %q (known: %v)", f, canonical.AllKinds())
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// FeaturesFor returns the feature list for one tool: the per-target
// override when one is configured, else the global list. Overrides go
// through the same expansion and validation as the global list.
func FeaturesFor(toolID string, global []canonical.Kind, overrides map[string][]string) ([]canonical.Kind, error) {
	if override, ok := overrides[toolID]; ok {
		kinds, err := Features(override)
		if err != nil {
			return nil, fmt.Errorf("feature override for %s: %w", toolID, err)
		}
		return kinds, nil
	}
	return global, nil
}
