package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/holocron/pkg/integrations/swapi"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds each entity's "type/id" key under its name.
	Detailed bool
}

// typeColors fills nodes by entity type.
var typeColors = map[swapi.EntityType]string{
	swapi.People:    "#fde68a",
	swapi.Planets:   "#bfdbfe",
	swapi.Films:     "#fecaca",
	swapi.Vehicles:  "#d9f99d",
	swapi.Starships: "#ddd6fe",
	swapi.Species:   "#fbcfe8",
}

// ToDOT converts a node and its resolved neighbors to Graphviz DOT, with
// one edge from center to each neighbor. The center is drawn bold.
// Neighbors sharing a key with the center or each other are drawn once.
func ToDOT(center *swapi.Node, neighbors []*swapi.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	centerID := center.Key.CacheKey()
	fmt.Fprintf(&buf, "  %q [%s, penwidth=3];\n", centerID, strings.Join(fmtAttrs(center, opts.Detailed), ", "))

	seen := map[string]bool{centerID: true}
	var targets []string
	for _, n := range neighbors {
		id := n.Key.CacheKey()
		if seen[id] {
			continue
		}
		seen[id] = true
		targets = append(targets, id)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, id := range targets {
		fmt.Fprintf(&buf, "  %q -> %q;\n", centerID, id)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *swapi.Node, detailed bool) string {
	name := n.Name
	if name == "" {
		name = n.Key.CacheKey()
	}
	if !detailed {
		return name
	}
	return name + "\n" + n.Key.CacheKey()
}

func fmtAttrs(n *swapi.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if c, ok := typeColors[n.Key.Type]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root <svg> tag so the image scales from a
// zero-origin viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
