package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ricosjp/truck-sub001/pkg/pipeline"
)

// subdivideCommand creates the subdivide command for refining meshes.
func (c *CLI) subdivideCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "subdivide [mesh.json|mesh.toml]",
		Short: "Refine a control mesh and export the result",
		Long: `Refine a control mesh and export the result.

The subdivide command builds the mesh from a description file, applies the
requested number of non-uniform Catmull-Clark refinement levels, converts
the result to a T-mesh, and writes the selected output formats. The json
format holds the T-mesh control net; dot and svg show the refined control
mesh as a diagram.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runSubdivide(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&opts.Levels, "levels", "l", 0, fmt.Sprintf("refinement levels, 1-%d (default %d)", pipeline.MaxLevels, pipeline.DefaultLevels))
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "label diagram nodes with point handles")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if cached artifacts exist")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg (comma-separated)")

	return cmd
}

// runSubdivide runs the pipeline and writes the requested artifacts.
func (c *CLI) runSubdivide(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Input = input
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Refining %s...", input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Refinement failed")
		return describeError(err, input)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeArtifacts(result.Artifacts, opts.Formats, input, output); err != nil {
		return err
	}

	printSuccess("Refinement complete")
	printStats(result.Stats.PointCount, result.Stats.EdgeCount, result.Stats.FaceCount, result.CacheInfo.RenderHit)
	printNewline()
	printNextStep("Evaluate", fmt.Sprintf("tnurcc eval %s 0.5 0.5 -l %d", input, opts.Levels))

	return nil
}

// =============================================================================
// Artifact Output
// =============================================================================

// writeArtifacts writes each rendered format to its own file. With a single
// format the output path is used as-is; with several, it is treated as a
// base path and the format extension is appended.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if len(formats) == 1 {
		path := output
		if path == "" {
			path = basePath("", input) + "." + formats[0]
		}
		return writeArtifact(path, artifacts[formats[0]])
	}

	base := basePath(output, input)
	for _, format := range formats {
		path := fmt.Sprintf("%s.%s", base, format)
		if err := writeArtifact(path, artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if path != "" {
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output already
// carries a format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// openOutput opens the output file, or stdout if path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
