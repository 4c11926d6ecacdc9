package adapter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/kennyg/scribe/internal/canonical"
)

func TestClaudeRuleArtifacts(t *testing.T) {
	tool := Lookup("claudecode")

	root := &canonical.Rule{
		Name:  "main",
		Front: canonical.RuleFrontmatter{Root: true, Targets: []string{"*"}},
		Body:  "Root instructions.\n",
	}
	artifacts, err := RuleArtifacts(tool, root, "/proj", ScopeProject)
	if err != nil {
		t.Fatalf("RuleArtifacts() error = %v", err)
	}
	if len(artifacts) != 1 || artifacts[0].Path() != "/proj/CLAUDE.md" {
		t.Errorf("root artifact = %v", artifacts[0].Path())
	}
	if string(artifacts[0].Content) != "Root instructions.\n" {
		t.Errorf("content = %q", artifacts[0].Content)
	}

	nested := &canonical.Rule{
		Name:   "api",
		RelDir: "backend",
		Front:  canonical.RuleFrontmatter{Targets: []string{"*"}},
		Body:   "API rules.\n",
	}
	artifacts, err = RuleArtifacts(tool, nested, "/proj", ScopeProject)
	if err != nil {
		t.Fatalf("RuleArtifacts() error = %v", err)
	}
	if artifacts[0].Path() != "/proj/.claude/memories/backend/api.md" {
		t.Errorf("nested artifact = %v", artifacts[0].Path())
	}
}

func TestClaudeSettingsIgnore(t *testing.T) {
	tool := Lookup("claudecode")

	file := &canonical.IgnoreFile{Patterns: []canonical.IgnorePattern{
		{Pattern: "secrets/**", Actions: []canonical.IgnoreAction{canonical.ActionRead}},
		{Pattern: "tmp/", Actions: []canonical.IgnoreAction{canonical.ActionWrite, canonical.ActionEdit}},
	}}

	a, err := IgnoreArtifact(tool, file, "/proj", ScopeProject)
	if err != nil {
		t.Fatalf("IgnoreArtifact() error = %v", err)
	}
	if a.Path() != "/proj/.claude/settings.json" {
		t.Errorf("path = %v", a.Path())
	}

	var settings struct {
		Permissions struct {
			Deny []string `json:"deny"`
		} `json:"permissions"`
	}
	if err := json.Unmarshal(a.Content, &settings); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := []string{"Read(secrets/**)", "Write(tmp/**)", "Edit(tmp/**)"}
	if len(settings.Permissions.Deny) != len(want) {
		t.Fatalf("deny = %v, want %v", settings.Permissions.Deny, want)
	}
	for i, w := range want {
		if settings.Permissions.Deny[i] != w {
			t.Errorf("deny[%d] = %q, want %q", i, settings.Permissions.Deny[i], w)
		}
	}

	// Parsing back merges actions per pattern.
	recovered, err := tool.Ignore.Parse(a.Content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(recovered.Patterns) != 2 {
		t.Fatalf("recovered %d patterns", len(recovered.Patterns))
	}
	if !recovered.Patterns[1].Denies(canonical.ActionWrite) || !recovered.Patterns[1].Denies(canonical.ActionEdit) {
		t.Errorf("recovered pattern = %+v", recovered.Patterns[1])
	}
}

func TestClaudeCommandRoundTrip(t *testing.T) {
	tool := Lookup("claudecode")

	cmd := &canonical.Command{
		Name: "review",
		Front: canonical.CommandFrontmatter{
			Description: "Review the current diff",
			Targets:     []string{"*"},
			Claudecode:  &canonical.ClaudeCommandExt{Model: "opus", AllowedTools: []string{"Bash", "Read"}},
		},
		Body: "Review it carefully.\n",
	}

	a, err := CommandArtifact(tool, cmd, "/proj", ScopeProject)
	if err != nil {
		t.Fatalf("CommandArtifact() error = %v", err)
	}
	if a.Path() != "/proj/.claude/commands/review.md" {
		t.Errorf("path = %v", a.Path())
	}
	if !strings.Contains(string(a.Content), "allowed-tools:") {
		t.Errorf("extension fields missing:\n%s", a.Content)
	}

	recovered, err := tool.Commands.Parse("review", a.Content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if recovered.Front.Description != cmd.Front.Description {
		t.Errorf("Description = %q", recovered.Front.Description)
	}
	if recovered.Front.Claudecode == nil || recovered.Front.Claudecode.Model != "opus" {
		t.Errorf("Claudecode ext = %+v", recovered.Front.Claudecode)
	}
}

func TestClaudeHooksMapping(t *testing.T) {
	tool := Lookup("claudecode")

	cfg := &canonical.HooksConfig{Hooks: map[string][]canonical.HookCommand{
		canonical.EventPreToolUse: {{Type: "command", Command: "guard.sh", Matcher: "Bash"}},
		canonical.EventStop:       {{Type: "command", Command: "done.sh"}},
	}}

	a, err := HooksArtifact(tool, cfg, "/proj", ScopeProject)
	if err != nil {
		t.Fatalf("HooksArtifact() error = %v", err)
	}
	if a.Path() != "/proj/.claude/hooks.json" {
		t.Errorf("path = %v", a.Path())
	}
	text := string(a.Content)
	if !strings.Contains(text, `"PreToolUse"`) || !strings.Contains(text, `"Stop"`) {
		t.Errorf("events not translated:\n%s", text)
	}

	recovered, err := tool.Hooks.Parse(a.Content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	pre := recovered.Hooks[canonical.EventPreToolUse]
	if len(pre) != 1 || pre[0].Matcher != "Bash" || pre[0].Command != "guard.sh" {
		t.Errorf("recovered preToolUse = %+v", pre)
	}
}

func TestClaudeSkillArtifacts(t *testing.T) {
	tool := Lookup("claudecode")

	skill := &canonical.Skill{
		Name:  "deploy",
		Front: canonical.SkillFrontmatter{Name: "deploy", Description: "Deploy helper", Targets: []string{"*"}},
		Body:  "Steps.\n",
		Aux: []canonical.SkillFile{
			{RelPath: "scripts/run.sh", Content: []byte("#!/bin/sh\n")},
		},
	}

	artifacts, err := SkillArtifacts(tool, skill, "/proj", ScopeProject)
	if err != nil {
		t.Fatalf("SkillArtifacts() error = %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("got %d artifacts, want 2", len(artifacts))
	}
	if artifacts[0].Path() != "/proj/.claude/skills/deploy/SKILL.md" {
		t.Errorf("skill file = %v", artifacts[0].Path())
	}
	if artifacts[1].Path() != "/proj/.claude/skills/deploy/scripts/run.sh" {
		t.Errorf("aux file = %v", artifacts[1].Path())
	}
}
