package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blinksale/rate-limiting/internal/rule"
)

// ParseRules turns the compact RATE_LIMIT_RULES value into an ordered rule
// list. Entries are semicolon separated; each entry is
//
//	pattern|key|limit|window|lockout
//
// where key is one of "ip", "path" or "header:<Name>", and window/lockout use
// Go duration syntax. Example:
//
//	/api/login|ip|3|1m|10m;/api/*|ip|100|1m|5m
//
// Entry order is preserved: the first matching rule wins at evaluation time.
func (c LimiterConfig) ParseRules() ([]rule.Rule, error) {
	var rules []rule.Rule

	for _, entry := range strings.Split(c.Rules, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, "|")
		if len(parts) != 5 {
			return nil, fmt.Errorf("rule %q: want pattern|key|limit|window|lockout", entry)
		}

		keyFn, err := c.parseKeyFunc(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", entry, err)
		}

		limit, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("rule %q: invalid limit: %w", entry, err)
		}

		window, err := time.ParseDuration(strings.TrimSpace(parts[3]))
		if err != nil {
			return nil, fmt.Errorf("rule %q: invalid window: %w", entry, err)
		}

		lockout, err := time.ParseDuration(strings.TrimSpace(parts[4]))
		if err != nil {
			return nil, fmt.Errorf("rule %q: invalid lockout: %w", entry, err)
		}

		r := rule.Rule{
			Pattern: strings.TrimSpace(parts[0]),
			Key:     keyFn,
			Limit:   limit,
			Window:  window,
			Lockout: lockout,
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("rule %q: %w", entry, err)
		}

		rules = append(rules, r)
	}

	return rules, nil
}

func (c LimiterConfig) parseKeyFunc(spec string) (rule.KeyFunc, error) {
	switch {
	case spec == "ip":
		return rule.KeyByClientIP(c.TrustForwardedFor), nil
	case spec == "path":
		return rule.KeyByPath(), nil
	case strings.HasPrefix(spec, "header:"):
		name := strings.TrimPrefix(spec, "header:")
		if name == "" {
			return nil, fmt.Errorf("header key needs a name")
		}
		return rule.KeyByHeader(name), nil
	default:
		return nil, fmt.Errorf("unknown key strategy %q", spec)
	}
}
