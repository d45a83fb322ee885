package config_test

import (
	"testing"
	"time"

	"github.com/blinksale/rate-limiting/internal/config"
	"github.com/blinksale/rate-limiting/internal/rule"
)

func TestParseRules(t *testing.T) {
	cfg := config.LimiterConfig{
		Rules: "/api/login|ip|3|1m|10m; /api/*|header:X-Api-Key|100|1m|5m",
	}

	rules, err := cfg.ParseRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}

	first := rules[0]
	if first.Pattern != "/api/login" {
		t.Errorf("expected first rule pattern /api/login, got %q", first.Pattern)
	}
	if first.Limit != 3 {
		t.Errorf("expected limit 3, got %d", first.Limit)
	}
	if first.Window != time.Minute {
		t.Errorf("expected window 1m, got %v", first.Window)
	}
	if first.Lockout != 10*time.Minute {
		t.Errorf("expected lockout 10m, got %v", first.Lockout)
	}

	// Header key strategy reads the named header
	key := rules[1].Key(rule.Request{Header: map[string][]string{"X-Api-Key": {"abc"}}})
	if key != "abc" {
		t.Errorf("expected header fingerprint, got %q", key)
	}
}

func TestParseRulesEmpty(t *testing.T) {
	rules, err := config.LimiterConfig{Rules: ""}.ParseRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("expected no rules, got %d", len(rules))
	}
}

func TestParseRulesRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		rules string
	}{
		{"missing fields", "/api/*|ip|3|1m"},
		{"unknown key strategy", "/api/*|session|3|1m|5m"},
		{"header without name", "/api/*|header:|3|1m|5m"},
		{"bad limit", "/api/*|ip|lots|1m|5m"},
		{"zero limit", "/api/*|ip|0|1m|5m"},
		{"bad window", "/api/*|ip|3|soon|5m"},
		{"bad lockout", "/api/*|ip|3|1m|later"},
		{"negative lockout", "/api/*|ip|3|1m|-5m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (config.LimiterConfig{Rules: tt.rules}).ParseRules(); err == nil {
				t.Errorf("expected parse error for %q", tt.rules)
			}
		})
	}
}

func TestParseRulesTrustForwardedFor(t *testing.T) {
	cfg := config.LimiterConfig{
		Rules:             "/api/*|ip|10|1m|5m",
		TrustForwardedFor: true,
	}

	rules, err := cfg.ParseRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := rule.Request{
		RemoteAddr: "10.0.0.1:443",
		Header:     map[string][]string{"X-Forwarded-For": {"198.51.100.9"}},
	}
	if key := rules[0].Key(req); key != "198.51.100.9" {
		t.Errorf("expected forwarded client ip, got %q", key)
	}
}
