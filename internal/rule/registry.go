package rule

import "fmt"

// Registry holds an ordered list of rules. Order is caller-controlled and
// significant: FindMatch returns the first rule whose pattern matches, with no
// further overlap resolution. A Registry is immutable after construction and
// safe to share across goroutines without locking.
type Registry struct {
	rules []Rule
}

// NewRegistry validates the given rules and builds a registry preserving
// their order.
func NewRegistry(rules ...Rule) (*Registry, error) {
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid rule %d (%s): %w", i, r.Pattern, err)
		}
	}

	reg := &Registry{rules: make([]Rule, len(rules))}
	copy(reg.rules, rules)
	return reg, nil
}

// FindMatch returns the first rule covering the given path. A false return
// means the request is not rate limited at all.
func (reg *Registry) FindMatch(reqPath string) (Rule, bool) {
	for _, r := range reg.rules {
		if r.Matches(reqPath) {
			return r, true
		}
	}
	return Rule{}, false
}

// Len returns the number of registered rules.
func (reg *Registry) Len() int {
	return len(reg.rules)
}
