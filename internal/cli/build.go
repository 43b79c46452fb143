package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ricosjp/truck-sub001/pkg/errors"
	"github.com/ricosjp/truck-sub001/pkg/meshio"
)

// buildCommand creates the build command for constructing and validating meshes.
func (c *CLI) buildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [mesh.json|mesh.toml]",
		Short: "Build and validate a control mesh from a description file",
		Long: `Build and validate a control mesh from a description file.

The build command reads a mesh description (JSON or TOML), constructs the
control mesh, and checks its topology: every face must be a quadrilateral,
every edge must border at most two faces, and the mesh must close up
around every control point.

Use 'subdivide' to refine a validated mesh.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0])
		},
	}
	return cmd
}

// runBuild loads the description, builds the mesh, and reports its shape.
func (c *CLI) runBuild(ctx context.Context, input string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	desc, err := meshio.ReadFile(input)
	if err != nil {
		return describeError(err, input)
	}
	logger.Debugf("Loaded description: %d points, %d faces", len(desc.Points), len(desc.Quads)+len(desc.Faces))

	m, err := desc.Build()
	if err != nil {
		return describeError(err, input)
	}
	prog.done(fmt.Sprintf("Built mesh from %s", input))

	printSuccess("Mesh is valid")
	printStats(m.PointCount(), m.EdgeCount(), m.FaceCount(), false)
	if n := len(m.ExtraordinaryPoints()); n > 0 {
		printDetail("%d extraordinary points", n)
	}
	printNewline()
	printNextStep("Refine", "tnurcc subdivide "+input)

	return nil
}

// describeError prefixes mesh errors with their machine-readable code so
// scripted callers can match on it.
func describeError(err error, input string) error {
	if code := errors.GetCode(err); code != "" {
		return fmt.Errorf("%s: [%s] %s", input, code, errors.UserMessage(err))
	}
	return fmt.Errorf("%s: %w", input, err)
}
