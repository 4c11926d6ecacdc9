package canonical

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SplitFrontmatter separates a leading YAML frontmatter block from the
// body. Content without a frontmatter block returns an empty block and the
// full text as body; callers decide whether that is acceptable for their
// kind.
func SplitFrontmatter(content []byte) (block string, body string) {
	text := string(content)
	if !strings.HasPrefix(text, "---") {
		return "", text
	}

	rest := strings.TrimPrefix(text[3:], "\n")
	idx := strings.Index(rest, "\n---")
	if idx == -1 {
		return "", text
	}

	block = rest[:idx]
	body = strings.TrimPrefix(rest[idx+4:], "\n")
	body = strings.TrimPrefix(body, "\n")
	return block, body
}

// DecodeFrontmatter parses content into a typed frontmatter struct and
// returns the body. A missing frontmatter block leaves target untouched.
func DecodeFrontmatter[T any](content []byte, target *T) (string, error) {
	block, body := SplitFrontmatter(content)
	if block == "" {
		return body, nil
	}
	if err := yaml.Unmarshal([]byte(block), target); err != nil {
		return "", fmt.Errorf("decode frontmatter: %w", err)
	}
	return body, nil
}

// EncodeFrontmatter renders a frontmatter struct and body back into file
// content. Serializing the result of a decode yields identical output, so
// unchanged artifacts never produce spurious writes.
func EncodeFrontmatter(fm any, body string) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(yamlBytes)
	b.WriteString("---\n")
	if body != "" {
		b.WriteString("\n")
		b.WriteString(body)
	}
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}
