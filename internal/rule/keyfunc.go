package rule

import (
	"net"
	"strings"
)

// KeyByClientIP fingerprints requests by client address. When trustXFF is set
// the first hop of X-Forwarded-For wins (the original client behind proxies),
// otherwise the host part of RemoteAddr is used.
func KeyByClientIP(trustXFF bool) KeyFunc {
	return func(r Request) string {
		if trustXFF && r.Header != nil {
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				if ip := strings.TrimSpace(first); ip != "" {
					return ip
				}
			}
		}

		host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
		if err == nil && host != "" {
			return host
		}
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
}

// KeyByPath fingerprints requests by path, so every client shares one counter
// per endpoint.
func KeyByPath() KeyFunc {
	return func(r Request) string {
		return r.Path
	}
}

// KeyByHeader fingerprints requests by a header value (e.g. an API key).
// Requests without the header collapse into a single "anonymous" counter.
func KeyByHeader(name string) KeyFunc {
	return func(r Request) string {
		if r.Header != nil {
			if v := strings.TrimSpace(r.Header.Get(name)); v != "" {
				return v
			}
		}
		return "anonymous"
	}
}
