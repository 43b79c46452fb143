// Package render turns control meshes into Graphviz visualizations of
// their connectivity graph. Points become nodes, mesh edges become links
// labelled with their knot interval.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/ricosjp/truck-sub001/pkg/geom"
	"github.com/ricosjp/truck-sub001/pkg/tnurcc"
)

// Options configures connectivity rendering.
type Options struct {
	// Labels includes knot intervals on edges and valences on nodes.
	Labels bool
}

// ToDOT converts a control mesh to Graphviz DOT format. The resulting DOT
// string can be rendered with [RenderSVG].
//
// Extraordinary points (valence != 4) are rendered with dashed outlines and
// grey fill to make the irregular regions of the mesh easy to spot.
func ToDOT(m *tnurcc.Tnurcc[geom.Vec3], opts Options) string {
	extraordinary := make(map[tnurcc.PointID]bool, len(m.ExtraordinaryPoints()))
	for _, p := range m.ExtraordinaryPoints() {
		extraordinary[p] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph mesh {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for i := 0; i < m.PointCount(); i++ {
		p := tnurcc.PointID(i)
		label := fmt.Sprintf("%d", i)
		if opts.Labels {
			label = fmt.Sprintf("%d (v%d)", i, m.Point(p).Valence)
		}
		attrs := fmt.Sprintf("label=%q", label)
		if extraordinary[p] {
			attrs += ", style=\"filled,dashed\", fillcolor=lightgrey"
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", i, attrs)
	}

	buf.WriteString("\n")
	for i := 0; i < m.EdgeCount(); i++ {
		e := m.Edge(tnurcc.EdgeID(i))
		if opts.Labels {
			fmt.Fprintf(&buf, "  %d -- %d [label=\"%g\"];\n", e.Origin, e.Dest, e.Knot)
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.Origin, e.Dest)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
