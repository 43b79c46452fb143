package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ricosjp/truck-sub001/pkg/cache"
	"github.com/ricosjp/truck-sub001/pkg/geom"
	"github.com/ricosjp/truck-sub001/pkg/meshio"
	"github.com/ricosjp/truck-sub001/pkg/observability"
	"github.com/ricosjp/truck-sub001/pkg/render"
	"github.com/ricosjp/truck-sub001/pkg/tmesh"
	"github.com/ricosjp/truck-sub001/pkg/tnurcc"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → subdivide → convert → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	m, hash, err := r.Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Mesh = m
	result.MeshHash = hash
	result.Stats.BuildTime = time.Since(buildStart)

	opts.Logger.Info("built mesh",
		"points", m.PointCount(),
		"edges", m.EdgeCount(),
		"faces", m.FaceCount(),
		"extraordinary", len(m.ExtraordinaryPoints()),
		"duration", result.Stats.BuildTime)

	// Stage 2: Subdivide
	subdivideStart := time.Now()
	refined, err := r.Subdivide(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("subdivide: %w", err)
	}
	result.Refined = refined
	result.Stats.SubdivideTime = time.Since(subdivideStart)
	result.Stats.PointCount = refined.PointCount()
	result.Stats.EdgeCount = refined.EdgeCount()
	result.Stats.FaceCount = refined.FaceCount()

	opts.Logger.Info("refined mesh",
		"levels", opts.Levels,
		"points", refined.PointCount(),
		"faces", refined.FaceCount(),
		"duration", result.Stats.SubdivideTime)

	// Stage 3: Convert
	convertStart := time.Now()
	net, tmeshHit, err := r.ConvertWithCacheInfo(ctx, refined, result.MeshHash, opts)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	result.TMesh = net
	result.Stats.ConvertTime = time.Since(convertStart)
	result.CacheInfo.TMeshHit = tmeshHit

	opts.Logger.Info("converted to T-mesh",
		"points", len(net.Points),
		"cached", tmeshHit,
		"duration", result.Stats.ConvertTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build loads the mesh description and constructs the control mesh. It
// returns the mesh together with the content hash of its description,
// which keys all derived cache entries.
func (r *Runner) Build(ctx context.Context, opts Options) (*tnurcc.Tnurcc[geom.Vec3], string, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", err
	}

	desc := opts.Description
	input := opts.Input
	if input == "" {
		input = "<inline>"
	}

	start := time.Now()
	observability.Mesh().OnBuildStart(ctx, input)

	if desc == nil {
		var err error
		desc, err = meshio.ReadFile(opts.Input)
		if err != nil {
			observability.Mesh().OnBuildComplete(ctx, input, 0, time.Since(start), err)
			return nil, "", err
		}
	}

	descData, err := json.Marshal(desc)
	if err != nil {
		return nil, "", fmt.Errorf("hash mesh description: %w", err)
	}
	hash := cache.Hash(descData)

	m, err := desc.Build()
	built := 0
	if m != nil {
		built = m.PointCount()
	}
	observability.Mesh().OnBuildComplete(ctx, input, built, time.Since(start), err)
	if err != nil {
		return nil, "", err
	}
	return m, hash, nil
}

// Subdivide applies opts.Levels rounds of refinement to a clone of m,
// emitting one hook pair per level. The input mesh is never mutated.
func (r *Runner) Subdivide(ctx context.Context, m *tnurcc.Tnurcc[geom.Vec3], opts Options) (*tnurcc.Tnurcc[geom.Vec3], error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	work := m.Clone()
	for level := 1; level <= opts.Levels; level++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		observability.Mesh().OnSubdivideStart(ctx, level, work.FaceCount())
		err := work.GlobalSubdivide()
		observability.Mesh().OnSubdivideComplete(ctx, level, work.FaceCount(), time.Since(start), err)
		if err != nil {
			// The partially rewritten mesh is unusable; drop it.
			return nil, err
		}
		opts.Logger.Debug("refinement level complete",
			"level", level,
			"faces", work.FaceCount())
	}
	return work, nil
}

// ConvertWithCacheInfo converts a refined mesh to its T-mesh with caching
// and returns cache hit info. The key is derived from the description hash
// and the refinement levels, so a cached net is only reused for the exact
// same input and refinement depth.
func (r *Runner) ConvertWithCacheInfo(ctx context.Context, refined *tnurcc.Tnurcc[geom.Vec3], meshHash string, opts Options) (*tmesh.Mesh[geom.Vec3], bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.TMeshKey(meshHash, cache.TMeshKeyOpts{Levels: opts.Levels})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if net, err := meshio.ReadTMesh(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "tmesh")
				return net, true, nil // Cache hit
			}
			// If deserialization fails, fall through to reconvert
		}
		observability.Cache().OnCacheMiss(ctx, "tmesh")
	}

	// Convert
	start := time.Now()
	observability.Mesh().OnConvertStart(ctx, opts.Levels)
	net, err := refined.ToTMesh(0)
	netPoints := 0
	if net != nil {
		netPoints = len(net.Points)
	}
	observability.Mesh().OnConvertComplete(ctx, opts.Levels, netPoints, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	var buf bytes.Buffer
	if err := meshio.WriteTMesh(net, &buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLTMesh); err == nil {
			observability.Cache().OnCacheSet(ctx, "tmesh", buf.Len())
		}
	}

	return net, false, nil // Cache miss
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. Artifacts are keyed by the description hash plus the options
// that shaped them, so unchanged inputs render for free.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(res.MeshHash, opts.artifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	rendered, err := r.renderAll(res, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(res.MeshHash, opts.artifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// renderAll produces every requested artifact from the pipeline result.
func (r *Runner) renderAll(res *Result, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	var dot string
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			if err := meshio.WriteTMesh(res.TMesh, &buf); err != nil {
				return nil, err
			}
			out[format] = buf.Bytes()
		case FormatDOT:
			if dot == "" {
				dot = render.ToDOT(res.Refined, render.Options{Labels: opts.Labels})
			}
			out[format] = []byte(dot)
		case FormatSVG:
			if dot == "" {
				dot = render.ToDOT(res.Refined, render.Options{Labels: opts.Labels})
			}
			svg, err := render.RenderSVG(dot)
			if err != nil {
				return nil, err
			}
			out[format] = svg
		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}
	return out, nil
}

// artifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) artifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Levels: o.Levels,
		Labels: o.Labels,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
