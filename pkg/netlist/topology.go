package netlist

import (
	"fmt"
	"sort"

	"github.com/edp1096/toy-cascade/pkg/device"
)

// Branch is a component placed in the cascade, node data stripped.
type Branch struct {
	Connection device.Connection
	Kind       device.Kind
	Value      float64
}

// Topology lists branches from the source port to the load port.
type Topology []Branch

// NumNodes is the highest signal node of the ladder, i.e. the output node.
func (t Topology) NumNodes() int {
	nodes := 1
	for _, b := range t {
		if b.Connection == device.Series {
			nodes++
		}
	}
	return nodes
}

type seriesLink struct {
	lower, upper int
	line         string
}

// ResolveTopology validates node connectivity and orders components for cascading.
//
// Series components must join adjacent nodes and together form the chain
// 1-2-...-N with exactly one component per link. Parallel components join a
// chain node to the common node 0. The result is sorted by node, so the shunt at
// node k sits between the series links k-1..k and k..k+1.
func ResolveTopology(components []Component) (Topology, error) {
	var links []seriesLink
	for _, c := range components {
		if c.NodeA == 0 && c.NodeB == 0 {
			return nil, &ParseError{Block: CircuitBlock, Line: c.Line, Err: ErrIllegalConnection, Detail: "both nodes are the common node"}
		}
		if c.IsParallel() {
			continue
		}
		if abs(c.NodeA-c.NodeB) != 1 {
			return nil, &ParseError{Block: CircuitBlock, Line: c.Line, Err: ErrIllegalConnection}
		}
		lower, upper := min(c.NodeA, c.NodeB), max(c.NodeA, c.NodeB)
		links = append(links, seriesLink{lower: lower, upper: upper, line: c.Line})
	}

	sort.SliceStable(links, func(i, j int) bool {
		return links[i].lower < links[j].lower
	})

	for i := 1; i < len(links); i++ {
		if links[i].lower == links[i-1].lower {
			return nil, &ParseError{Block: CircuitBlock, Line: links[i].line, Err: ErrConflictingConnection,
				Detail: fmt.Sprintf("nodes %d-%d already used by %q", links[i].lower, links[i].upper, links[i-1].line)}
		}
	}

	for i, link := range links {
		if want := i + 1; link.lower != want {
			return nil, &ParseError{Block: CircuitBlock, Err: ErrMissingNode,
				Detail: fmt.Sprintf("no series component between nodes %d and %d", want, want+1)}
		}
	}

	lastNode := len(links) + 1
	for _, c := range components {
		if !c.IsParallel() {
			continue
		}
		if node := max(c.NodeA, c.NodeB); node > lastNode {
			return nil, &ParseError{Block: CircuitBlock, Line: c.Line, Err: ErrMissingNode,
				Detail: fmt.Sprintf("node %d is not connected to the series chain ending at node %d", node, lastNode)}
		}
	}

	ordered := make([]Component, len(components))
	copy(ordered, components)
	sort.SliceStable(ordered, func(i, j int) bool {
		ai, bi := cascadeKey(ordered[i])
		aj, bj := cascadeKey(ordered[j])
		if ai != aj {
			return ai < aj
		}
		return bi < bj
	})

	topology := make(Topology, 0, len(ordered))
	for _, c := range ordered {
		conn := device.Series
		if c.IsParallel() {
			conn = device.Parallel
		}
		topology = append(topology, Branch{Connection: conn, Kind: c.Kind, Value: c.Value})
	}
	return topology, nil
}

// cascadeKey - series (lower, upper), parallel (node, 0)
func cascadeKey(c Component) (int, int) {
	if c.IsParallel() {
		return max(c.NodeA, c.NodeB), 0
	}
	return min(c.NodeA, c.NodeB), max(c.NodeA, c.NodeB)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ParseCircuit parses the CIRCUIT block text into a cascade-ordered Topology.
func ParseCircuit(text string) (Topology, []Warning, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, nil, &ParseError{Block: CircuitBlock, Err: ErrEmptyBlock}
	}

	var warnings []Warning
	components := make([]Component, 0, len(lines))
	for _, line := range lines {
		c, warns, err := ParseComponent(line)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, warns...)
		components = append(components, c)
	}

	topology, err := ResolveTopology(components)
	if err != nil {
		return nil, nil, err
	}
	return topology, warnings, nil
}
