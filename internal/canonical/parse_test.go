package canonical

import (
	"strings"
	"testing"
)

func TestSplitFrontmatter(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantBlock string
		wantBody  string
	}{
		{
			name: "block and body",
			content: `---
description: test
---

# Body
`,
			wantBlock: "description: test",
			wantBody:  "# Body\n",
		},
		{
			name:      "no frontmatter",
			content:   "# Just markdown\n",
			wantBlock: "",
			wantBody:  "# Just markdown\n",
		},
		{
			name: "unclosed block",
			content: `---
description: test
no closing delimiter`,
			wantBlock: "",
			wantBody:  "---\ndescription: test\nno closing delimiter",
		},
		{
			name:      "empty content",
			content:   "",
			wantBlock: "",
			wantBody:  "",
		},
		{
			name: "body with horizontal rule",
			content: `---
description: test
---

before

---

after
`,
			wantBlock: "description: test",
			wantBody:  "before\n\n---\n\nafter\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, body := SplitFrontmatter([]byte(tt.content))
			if block != tt.wantBlock {
				t.Errorf("block = %q, want %q", block, tt.wantBlock)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestDecodeFrontmatter(t *testing.T) {
	type fm struct {
		Description string   `yaml:"description"`
		Targets     []string `yaml:"targets"`
	}

	content := []byte(`---
description: review helper
targets: [claudecode, cursor]
---

Review the diff.
`)

	var got fm
	body, err := DecodeFrontmatter(content, &got)
	if err != nil {
		t.Fatalf("DecodeFrontmatter() error = %v", err)
	}
	if got.Description != "review helper" {
		t.Errorf("Description = %q", got.Description)
	}
	if len(got.Targets) != 2 || got.Targets[0] != "claudecode" {
		t.Errorf("Targets = %v", got.Targets)
	}
	if body != "Review the diff.\n" {
		t.Errorf("body = %q", body)
	}
}

func TestDecodeFrontmatterInvalidYAML(t *testing.T) {
	type fm struct {
		Description string `yaml:"description"`
	}
	content := []byte("---\ndescription: [unclosed\n---\nbody\n")

	var got fm
	if _, err := DecodeFrontmatter(content, &got); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestEncodeFrontmatterStable(t *testing.T) {
	type fm struct {
		Description string   `yaml:"description,omitempty"`
		Targets     []string `yaml:"targets,omitempty"`
	}

	first, err := EncodeFrontmatter(&fm{Description: "x", Targets: []string{"*"}}, "body\n")
	if err != nil {
		t.Fatalf("EncodeFrontmatter() error = %v", err)
	}

	var decoded fm
	body, err := DecodeFrontmatter(first, &decoded)
	if err != nil {
		t.Fatalf("DecodeFrontmatter() error = %v", err)
	}
	second, err := EncodeFrontmatter(&decoded, body)
	if err != nil {
		t.Fatalf("re-encode error = %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("round trip not stable:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if !strings.HasSuffix(string(first), "\n") {
		t.Error("encoded content must end with a newline")
	}
}
