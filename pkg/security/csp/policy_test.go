package csp

import (
	"strings"
	"testing"
)

func TestBuilder_Build(t *testing.T) {
	policy := NewBuilder().
		StyleSrc("'self'", "'unsafe-inline'").
		DefaultSrc("'self'").
		Build()

	expected := "default-src 'self'; style-src 'self' 'unsafe-inline'"
	if policy != expected {
		t.Errorf("Expected %q, got %q", expected, policy)
	}
}

func TestBuilder_EmptyPolicy(t *testing.T) {
	if got := NewBuilder().Build(); got != "" {
		t.Errorf("Expected empty policy, got %q", got)
	}
}

func TestBuilder_SkipsEmptyDirective(t *testing.T) {
	policy := NewBuilder().DefaultSrc("'none'").ImgSrc().Build()
	if strings.Contains(policy, "img-src") {
		t.Errorf("img-src without sources should be omitted: %q", policy)
	}
}

func TestBuilder_DirectiveOrder(t *testing.T) {
	policy := NewBuilder().
		ObjectSrc("'none'").
		BaseURI("'none'").
		FormAction("'self'").
		FrameAncestors("'none'").
		ImgSrc("'self'").
		DefaultSrc("'none'").
		Build()

	expected := "default-src 'none'; img-src 'self'; frame-ancestors 'none'; form-action 'self'; base-uri 'none'; object-src 'none'"
	if policy != expected {
		t.Errorf("Expected %q, got %q", expected, policy)
	}
}

func TestPagePolicy(t *testing.T) {
	policy := PagePolicy().Build()

	for _, want := range []string{
		"default-src 'none'",
		"style-src 'unsafe-inline'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	} {
		if !strings.Contains(policy, want) {
			t.Errorf("PagePolicy missing %q: %s", want, policy)
		}
	}
	if strings.Contains(policy, "script-src") {
		t.Errorf("PagePolicy should not allow scripts: %s", policy)
	}
}

func TestStrictPolicy(t *testing.T) {
	policy := StrictPolicy().Build()
	if !strings.HasPrefix(policy, "default-src 'none'") {
		t.Errorf("unexpected strict policy %q", policy)
	}
}
