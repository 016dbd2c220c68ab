package container

import "log/slog"

// dependencyGraph is the static dependency graph derived from sealed
// descriptors before any component is instantiated. Nodes are component
// names; an edge A -> B means constructing A requires B already constructed.
type dependencyGraph struct {
	nodes []string
	edges map[string][]string
}

// buildGraph performs static resolution of every injection request of every
// descriptor and records one edge per resolved target. Collection requests
// fan out to one edge per matching component. Node order and per-node edge
// order follow registration order, so traversal is deterministic.
func buildGraph(reg *registry, resolver *injectionResolver, logger *slog.Logger) (*dependencyGraph, error) {
	logger.Debug("Building dependency graph")

	g := &dependencyGraph{
		edges: make(map[string][]string),
	}

	for _, d := range reg.inOrder() {
		g.nodes = append(g.nodes, d.name)

		seen := make(map[string]bool)
		for _, req := range d.requests() {
			targets, err := resolver.resolveNames(d.name, req)
			if err != nil {
				return nil, err
			}
			for _, target := range targets {
				// A component may legitimately resolve to itself through a
				// collection request; the self-edge is kept so the cycle
				// detector reports it rather than instantiation hanging.
				if seen[target] {
					continue
				}
				seen[target] = true
				g.edges[d.name] = append(g.edges[d.name], target)
			}
		}

		logger.Debug("Dependencies resolved",
			"component", d.name,
			"dependencies", len(g.edges[d.name]))
	}

	return g, nil
}

// dependencies returns the outgoing edges of a node in insertion order.
func (g *dependencyGraph) dependencies(name string) []string {
	return g.edges[name]
}
