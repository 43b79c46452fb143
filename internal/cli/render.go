package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ricosjp/truck-sub001/pkg/meshio"
	"github.com/ricosjp/truck-sub001/pkg/pipeline"
	"github.com/ricosjp/truck-sub001/pkg/render"
)

// renderCommand creates the render command for diagramming the control mesh.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		labels     bool
	)

	cmd := &cobra.Command{
		Use:   "render [mesh.json|mesh.toml]",
		Short: "Render the control mesh as a DOT or SVG diagram",
		Long: `Render the control mesh as a DOT or SVG diagram.

The render command builds the mesh without refining it and draws its
connectivity as a graph: one node per control point, one edge per mesh
edge, with extraordinary points highlighted. Use 'subdivide -f dot,svg'
to diagram the refined mesh instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseDiagramFormats(formatsStr)
			for _, f := range formats {
				if f != pipeline.FormatDOT && f != pipeline.FormatSVG {
					return fmt.Errorf("invalid format: %q (must be 'dot' or 'svg')", f)
				}
			}
			return c.runRender(cmd.Context(), args[0], formats, output, labels)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot (comma-separated)")
	cmd.Flags().BoolVar(&labels, "labels", false, "label diagram nodes with point handles")

	return cmd
}

// parseDiagramFormats parses the --format flag, defaulting to svg.
func parseDiagramFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return parseFormats(s)
}

// runRender builds the mesh and writes its diagram.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, output string, labels bool) error {
	logger := loggerFromContext(ctx)

	desc, err := meshio.ReadFile(input)
	if err != nil {
		return describeError(err, input)
	}
	m, err := desc.Build()
	if err != nil {
		return describeError(err, input)
	}
	logger.Debugf("Built mesh: %d points, %d edges, %d faces", m.PointCount(), m.EdgeCount(), m.FaceCount())

	dot := render.ToDOT(m, render.Options{Labels: labels})

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		switch format {
		case pipeline.FormatDOT:
			artifacts[format] = []byte(dot)
		case pipeline.FormatSVG:
			spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
			spinner.Start()
			svg, err := render.RenderSVG(dot)
			if err != nil {
				spinner.StopWithError("Render failed")
				return err
			}
			spinner.Stop()
			artifacts[format] = svg
		}
	}

	if err := writeArtifacts(artifacts, formats, input, output); err != nil {
		return err
	}

	printSuccess("Diagram complete")
	printStats(m.PointCount(), m.EdgeCount(), m.FaceCount(), false)

	return nil
}
