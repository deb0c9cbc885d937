// Package nodelink renders an entity's neighbourhood as a node-link diagram.
//
// # Usage
//
// Convert a matched node and its resolved neighbours to DOT, then render to
// SVG:
//
//	dot := nodelink.ToDOT(hood.Center, hood.Neighbors, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT output can also be saved and processed with external Graphviz
// tools. Nodes are coloured by entity type and laid out left to right.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package nodelink
