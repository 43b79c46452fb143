// Package pipeline provides the core processing pipeline for mesh
// descriptions.
//
// This package implements the complete build → subdivide → convert → render
// pipeline so the CLI and any embedding service share one code path. Each
// stage can be run independently or as part of the complete pipeline.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Build: Load a mesh description and construct the validated control mesh
//  2. Subdivide: Apply N levels of non-uniform Catmull-Clark refinement
//  3. Convert: Re-parametrize the refined mesh into a T-mesh control net
//  4. Render: Generate output artifacts (T-mesh JSON, DOT, SVG)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "cube.json",
//	    Levels:  2,
//	    Formats: []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ricosjp/truck-sub001/pkg/geom"
	"github.com/ricosjp/truck-sub001/pkg/meshio"
	"github.com/ricosjp/truck-sub001/pkg/tmesh"
	"github.com/ricosjp/truck-sub001/pkg/tnurcc"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Embedders
// =============================================================================

const (
	// DefaultLevels is the default number of refinement levels. One level
	// already isolates extraordinary points into regular neighborhoods.
	DefaultLevels = 1

	// MaxLevels bounds refinement: each level quadruples the face count,
	// so anything beyond this produces meshes too large to be useful.
	MaxLevels = 8
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the mesh pipeline.
// This struct supports JSON serialization for embedding in services.
type Options struct {
	// Input is the path of a mesh description (.json or .toml). Exactly
	// one of Input or Description must be set.
	Input string `json:"input,omitempty"`

	// Description is an in-memory mesh description, used instead of Input.
	Description *meshio.Description `json:"description,omitempty"`

	// Levels is the number of refinement levels to apply.
	Levels int `json:"levels,omitempty"`

	// Formats selects the rendered artifacts.
	Formats []string `json:"formats,omitempty"`

	// Labels includes knot intervals and valences in DOT/SVG output.
	Labels bool `json:"labels,omitempty"`

	// Refresh bypasses cached artifacts and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Mesh is the control mesh as built from the description.
	Mesh *tnurcc.Tnurcc[geom.Vec3]

	// Refined is the mesh after Levels rounds of refinement.
	Refined *tnurcc.Tnurcc[geom.Vec3]

	// MeshHash is the content hash of the mesh description.
	MeshHash string

	// TMesh is the converted control net.
	TMesh *tmesh.Mesh[geom.Vec3]

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PointCount    int
	EdgeCount     int
	FaceCount     int
	BuildTime     time.Duration
	SubdivideTime time.Duration
	ConvertTime   time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TMeshHit  bool // Whether the converted T-mesh came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if (o.Input == "") == (o.Description == nil) {
		return fmt.Errorf("exactly one of input or description is required")
	}
	if o.Levels < 0 || o.Levels > MaxLevels {
		return fmt.Errorf("levels must be between 0 and %d, got %d", MaxLevels, o.Levels)
	}
	if o.Levels == 0 {
		o.Levels = DefaultLevels
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
