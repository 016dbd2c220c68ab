package container

import "strings"

// visitState tracks a node during depth-first traversal.
type visitState int

const (
	unvisited visitState = iota
	inProgress
	finished
)

// DefaultCycleMessage renders a detected cycle, e.g.
// "Cyclic reference detected: A -> B -> C -> A".
func DefaultCycleMessage(path []string) string {
	return "Cyclic reference detected: " + strings.Join(path, " -> ")
}

// detectCycles walks the graph depth-first and fails on the first cycle
// found. The reported path runs from the first occurrence of the revisited
// node through the closing edge, first and last entries identical. Node and
// edge order are registration order, so repeated runs over the same
// registrations report the same path.
func detectCycles(g *dependencyGraph, render func(path []string) string) error {
	states := make(map[string]visitState, len(g.nodes))
	var path []string

	var visit func(name string) []string
	visit = func(name string) []string {
		states[name] = inProgress
		path = append(path, name)

		for _, dep := range g.dependencies(name) {
			switch states[dep] {
			case inProgress:
				// dep is on the current path: slice from its first
				// occurrence and close the loop.
				for i, n := range path {
					if n == dep {
						cycle := make([]string, 0, len(path)-i+1)
						cycle = append(cycle, path[i:]...)
						return append(cycle, dep)
					}
				}
			case unvisited:
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			}
		}

		path = path[:len(path)-1]
		states[name] = finished
		return nil
	}

	for _, name := range g.nodes {
		if states[name] == unvisited {
			if cycle := visit(name); cycle != nil {
				return CyclicDependencyError(render(cycle), cycle)
			}
		}
	}
	return nil
}
