package recipe

import (
	"cssb/utils/debug"
)

// Tree dumps every definition with its combinator tree. Selectors are
// rendered without being consumed, build errors are shown inline.
func (r *Recipe) Tree() string {
	tw := debug.NewTreeWriter()
	for _, def := range r.Selectors {
		tw.Line(0, "%s (%s)", def.Key(), def.Name)
		writeNode(tw, 1, def.Node)
	}
	return tw.String()
}

func writeNode(tw *debug.TreeWriter, depth int, n Node) {
	sel, err := n.Selector()
	switch {
	case err != nil:
		tw.Line(depth, "error: %v", err)
	case sel.Err() != nil:
		tw.Line(depth, "error: %v", sel.Err())
	default:
		tw.Pair(depth, "selector", sel.String())
	}

	if n.Combine != nil {
		tw.Pair(depth, "combine", n.Combine.Combinator)
		tw.Line(depth+1, "left")
		writeNode(tw, depth+2, n.Combine.Left)
		tw.Line(depth+1, "right")
		writeNode(tw, depth+2, n.Combine.Right)
		return
	}
	for _, step := range n.Steps {
		cat, value, err := step.split()
		if err != nil {
			tw.Line(depth+1, "error: %v", err)
			continue
		}
		tw.Pair(depth+1, cat.String(), value)
	}
}
