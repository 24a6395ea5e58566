package variables

import (
	"slices"
	"strings"

	"bennypowers.dev/svls/internal/patterns"
)

// Graph is the var() dependency graph between custom properties.
type Graph struct {
	// name -> names referenced from its value, in source order
	dependencies map[string][]string
	// name -> names whose value references it
	dependents map[string][]string
}

// BuildGraph derives the dependency graph from a variable map.
func BuildGraph(m Map) *Graph {
	g := &Graph{
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
	}
	for _, name := range m.Names() {
		raw, _ := m.Lookup(name)
		for _, dep := range References(raw) {
			if slices.Contains(g.dependencies[name], dep) {
				continue
			}
			g.dependencies[name] = append(g.dependencies[name], dep)
			g.dependents[dep] = append(g.dependents[dep], name)
		}
	}
	return g
}

// References returns the lower-cased custom property names referenced by
// var() calls anywhere in value.
func References(value string) []string {
	var names []string
	for _, span := range patterns.FindVarCalls(value) {
		if ref, ok := patterns.ParseVar(span.Text(value)); ok {
			names = append(names, strings.ToLower(ref.Name))
		}
	}
	return names
}

// Dependencies returns the names that name's value references.
func (g *Graph) Dependencies(name string) []string {
	return g.dependencies[strings.ToLower(name)]
}

// Dependents returns the names whose value references name.
func (g *Graph) Dependents(name string) []string {
	return g.dependents[strings.ToLower(name)]
}

// CycleFrom returns a reference cycle reachable from name, starting and
// ending with the repeated name, or nil when there is none.
func (g *Graph) CycleFrom(name string) []string {
	onStack := make(map[string]bool)
	done := make(map[string]bool)
	var path []string

	var visit func(string) []string
	visit = func(n string) []string {
		if onStack[n] {
			start := slices.Index(path, n)
			return append(slices.Clone(path[start:]), n)
		}
		if done[n] {
			return nil
		}
		onStack[n] = true
		path = append(path, n)
		for _, dep := range g.dependencies[n] {
			if cycle := visit(dep); cycle != nil {
				return cycle
			}
		}
		path = path[:len(path)-1]
		onStack[n] = false
		done[n] = true
		return nil
	}
	return visit(strings.ToLower(name))
}
