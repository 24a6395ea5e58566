package variables

import (
	"strings"

	"bennypowers.dev/svls/internal/patterns"
)

// finder extracts a literal of the wanted kind from candidate text.
type finder func(string) (string, bool)

// ResolveColor returns the first color literal reachable from value, either
// directly or by following var() references and their fallbacks.
func ResolveColor(value string, m Map) (string, bool) {
	return resolveLiteral(value, m, patterns.FirstColorLiteral, map[string]bool{})
}

// ResolveGradient returns the first complete gradient call reachable from
// value, either directly or through var() references.
func ResolveGradient(value string, m Map) (string, bool) {
	return resolveLiteral(value, m, patterns.FirstGradientCall, map[string]bool{})
}

// ResolveGeneric follows var() references only when the whole trimmed
// value is a single var() call; any other value is returned trimmed.
func ResolveGeneric(value string, m Map) (string, bool) {
	return resolveGeneric(value, m, map[string]bool{})
}

func resolveLiteral(value string, m Map, find finder, visited map[string]bool) (string, bool) {
	if lit, ok := find(value); ok {
		return lit, true
	}
	return follow(value, m, visited, func(candidate string) (string, bool) {
		return resolveLiteral(candidate, m, find, visited)
	})
}

func resolveGeneric(value string, m Map, visited map[string]bool) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if !patterns.IsVar(trimmed) {
		return trimmed, true
	}
	return follow(trimmed, m, visited, func(candidate string) (string, bool) {
		return resolveGeneric(candidate, m, visited)
	})
}

// follow resolves a var() reference: the declared value first, then the
// fallback. A name seen earlier in the same walk is unresolvable.
func follow(value string, m Map, visited map[string]bool, next func(string) (string, bool)) (string, bool) {
	ref, ok := patterns.ParseVar(value)
	if !ok {
		return "", false
	}
	key := strings.ToLower(ref.Name)
	if visited[key] {
		return "", false
	}
	visited[key] = true

	if raw, ok := m.Lookup(key); ok {
		if resolved, ok := next(raw); ok {
			return resolved, true
		}
	}
	if ref.HasFallback {
		return next(ref.Fallback)
	}
	return "", false
}
