package meshio

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ricosjp/truck-sub001/pkg/errors"
)

const cubeJSON = `{
  "points": [
    [0,0,0], [1,0,0], [1,1,0], [0,1,0],
    [0,0,1], [1,0,1], [1,1,1], [0,1,1]
  ],
  "quads": [
    [0,3,2,1], [4,5,6,7], [0,1,5,4],
    [1,2,6,5], [2,3,7,6], [3,0,4,7]
  ]
}`

const faceTOML = `
points = [[0.0, 0.0, 0.0], [2.0, 0.0, 0.0], [2.0, 1.0, 0.0], [0.0, 1.0, 0.0]]

[[faces]]
[[faces.runs]]
start = 0
steps = [{next = 1, knot = 2.0}]
[[faces.runs]]
start = 1
steps = [{next = 2, knot = 1.0}]
[[faces.runs]]
start = 2
steps = [{next = 3, knot = 2.0}]
[[faces.runs]]
start = 3
steps = [{next = 0, knot = 1.0}]
`

func TestDecode_BuildCube(t *testing.T) {
	d, err := Decode(strings.NewReader(cubeJSON))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	m, err := d.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if m.PointCount() != 8 || m.EdgeCount() != 12 || m.FaceCount() != 6 {
		t.Errorf("built mesh has %d/%d/%d, want 8/12/6",
			m.PointCount(), m.EdgeCount(), m.FaceCount())
	}
}

func TestDecodeTOML_FaceForm(t *testing.T) {
	d, err := DecodeTOML(strings.NewReader(faceTOML))
	if err != nil {
		t.Fatalf("DecodeTOML() error = %v", err)
	}
	if len(d.Faces) != 1 || len(d.Faces[0].Runs) != 4 {
		t.Fatalf("decoded %d faces, want 1 face with 4 runs", len(d.Faces))
	}
	if got := d.Faces[0].Runs[0].Steps[0].Knot; got != 2 {
		t.Errorf("first run knot = %v, want 2", got)
	}

	// A lone face leaves every edge one-sided.
	if _, err := d.Build(); !errors.Is(err, errors.ErrCodeMissingFace) {
		t.Errorf("Build() error = %v, want code %v", err, errors.ErrCodeMissingFace)
	}
}

func TestReadFile_Dispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.json")
	if err := os.WriteFile(path, []byte(cubeJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadFile(path); err != nil {
		t.Errorf("ReadFile(json) error = %v", err)
	}
	if _, err := ReadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) error = %v, want code %v", err, errors.ErrCodeFileNotFound)
	}
	if _, err := ReadFile(filepath.Join(dir, "cube.xml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadFile(xml) error = %v, want code %v", err, errors.ErrCodeInvalidFormat)
	}
}

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name string
		d    Description
		code errors.Code
	}{
		{
			name: "no points",
			d:    Description{Quads: [][]int{{0, 1, 2, 3}}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "neither quads nor faces",
			d:    Description{Points: [][]float64{{0, 0, 0}}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "short point",
			d: Description{
				Points: [][]float64{{0, 0}},
				Quads:  [][]int{{0, 1, 2, 3}},
			},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "short quad",
			d: Description{
				Points: [][]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
				Quads:  [][]int{{0, 1, 2}},
			},
			code: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.d.Build(); !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestWriteTMesh(t *testing.T) {
	d, err := Decode(strings.NewReader(cubeJSON))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	m, err := d.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	net, err := m.ToTMesh(1)
	if err != nil {
		t.Fatalf("ToTMesh() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteTMesh(net, &buf); err != nil {
		t.Fatalf("WriteTMesh() error = %v", err)
	}

	var doc struct {
		Points []struct {
			Position []float64 `json:"position"`
			UV       []float64 `json:"uv"`
		} `json:"points"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("re-decode exported T-mesh: %v", err)
	}
	if got, want := len(doc.Points), m.PointCount()+m.EdgeCount()+m.FaceCount(); got != want {
		t.Errorf("exported %d points, want %d", got, want)
	}
}

func TestReadTMesh_RoundTrip(t *testing.T) {
	d, err := Decode(strings.NewReader(cubeJSON))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	m, err := d.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	net, err := m.ToTMesh(0)
	if err != nil {
		t.Fatalf("ToTMesh() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteTMesh(net, &buf); err != nil {
		t.Fatalf("WriteTMesh() error = %v", err)
	}
	got, err := ReadTMesh(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadTMesh() error = %v", err)
	}

	if len(got.Points) != len(net.Points) {
		t.Fatalf("read %d points, want %d", len(got.Points), len(net.Points))
	}
	for i, want := range net.Points {
		p := got.Points[i]
		if p.Point != want.Point {
			t.Errorf("point %d position = %v, want %v", i, p.Point, want.Point)
		}
		if p.UV != want.UV {
			t.Errorf("point %d uv = %v, want %v", i, p.UV, want.UV)
		}
		if p.Conn != want.Conn {
			t.Errorf("point %d connections = %v, want %v", i, p.Conn, want.Conn)
		}
	}
}

func TestReadTMesh_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "{"},
		{"short position", `{"points": [{"position": [0, 0], "uv": [0, 0]}]}`},
		{"unknown direction", `{"points": [{"position": [0, 0, 0], "uv": [0, 0], "connections": {"up": {"weight": 1}}}]}`},
		{"neighbor out of range", `{"points": [{"position": [0, 0, 0], "uv": [0, 0], "connections": {"east": {"neighbor": 5, "weight": 1}}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadTMesh(strings.NewReader(tt.in)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ReadTMesh() error = %v, want code %v", err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}
