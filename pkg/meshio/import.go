package meshio

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ricosjp/truck-sub001/pkg/errors"
	"github.com/ricosjp/truck-sub001/pkg/geom"
	"github.com/ricosjp/truck-sub001/pkg/tnurcc"
)

// Description is a control mesh description as read from disk. Exactly one
// of Quads or Faces must be populated.
type Description struct {
	Points [][]float64   `json:"points" toml:"points"`
	Quads  [][]int       `json:"quads,omitempty" toml:"quads"`
	Faces  []FaceListing `json:"faces,omitempty" toml:"faces"`
}

// FaceListing spells out one face as four anticlockwise boundary runs.
type FaceListing struct {
	Runs []RunListing `json:"runs" toml:"runs"`
}

// RunListing is one boundary run: a start point index and its steps.
type RunListing struct {
	Start int           `json:"start" toml:"start"`
	Steps []StepListing `json:"steps" toml:"steps"`
}

// StepListing is one edge of a run.
type StepListing struct {
	Next int     `json:"next" toml:"next"`
	Knot float64 `json:"knot" toml:"knot"`
}

// Decode reads a JSON mesh description from r.
func Decode(r io.Reader) (*Description, error) {
	var d Description
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON mesh description")
	}
	return &d, nil
}

// DecodeTOML reads a TOML mesh description from r.
func DecodeTOML(r io.Reader) (*Description, error) {
	var d Description
	if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML mesh description")
	}
	return &d, nil
}

// ReadFile loads a mesh description from path, dispatching on the file
// extension (.json or .toml).
func ReadFile(path string) (*Description, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}

	var decode func(io.Reader) (*Description, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		decode = Decode
	case ".toml":
		decode = DecodeTOML
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported mesh description extension %q (want .json or .toml)", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return decode(f)
}

// Build validates the description and constructs the control mesh. The
// quad shorthand delegates to [tnurcc.FromQuadMesh]; the full face form to
// [tnurcc.New].
func (d *Description) Build() (*tnurcc.Tnurcc[geom.Vec3], error) {
	if len(d.Points) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mesh description has no points")
	}
	if (len(d.Quads) == 0) == (len(d.Faces) == 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"mesh description must have exactly one of quads or faces")
	}

	points := make([]geom.Vec3, len(d.Points))
	for i, coords := range d.Points {
		if len(coords) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"point %d has %d coordinates, want 3", i, len(coords))
		}
		points[i] = geom.V3(coords[0], coords[1], coords[2])
	}

	if len(d.Quads) > 0 {
		quads := make([][4]int, len(d.Quads))
		for i, q := range d.Quads {
			if len(q) != 4 {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"quad %d has %d corners, want 4", i, len(q))
			}
			copy(quads[i][:], q)
		}
		return tnurcc.FromQuadMesh(points, quads)
	}

	faces := make([]tnurcc.FaceSpec, len(d.Faces))
	for i, face := range d.Faces {
		if len(face.Runs) != 4 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"face %d has %d boundary runs, want 4", i, len(face.Runs))
		}
		for j, run := range face.Runs {
			steps := make([]tnurcc.RunStep, len(run.Steps))
			for k, s := range run.Steps {
				steps[k] = tnurcc.RunStep{Next: s.Next, Knot: s.Knot}
			}
			faces[i][j] = tnurcc.Run{Start: run.Start, Steps: steps}
		}
	}
	return tnurcc.New(points, faces)
}
