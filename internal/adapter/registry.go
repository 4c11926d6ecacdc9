package adapter

import (
	"github.com/kennyg/scribe/internal/canonical"
)

// Registry returns every supported tool in fixed registration order.
// Wildcard target expansion follows this order, never filesystem order,
// so repeated runs produce identical output sequences.
func Registry() []*Tool {
	return []*Tool{
		claudecodeTool(),
		cursorTool(),
		copilotTool(),
		clineTool(),
		codexcliTool(),
		geminicliTool(),
		windsurfTool(),
		opencodeTool(),
		rooTool(),
	}
}

// Lookup returns the tool registered under id, or nil.
func Lookup(id string) *Tool {
	for _, t := range Registry() {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// IDs returns the registered tool ids in registry order.
func IDs() []string {
	reg := Registry()
	ids := make([]string, len(reg))
	for i, t := range reg {
		ids[i] = t.ID
	}
	return ids
}

// SupportingKind returns the registered tools that have any
// representation for kind, in registry order.
func SupportingKind(kind canonical.Kind) []*Tool {
	var tools []*Tool
	for _, t := range Registry() {
		if t.Supports(kind) {
			tools = append(tools, t)
		}
	}
	return tools
}
