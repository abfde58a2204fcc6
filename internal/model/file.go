package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/goframe/internal/section"
)

// File is the on-disk description of a model. Lengths, forces and moduli
// must use one consistent unit system, e.g. mm, N and MPa.
type File struct {
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Materials   []MaterialSpec `json:"materials" yaml:"materials"`
	Sections    []SectionSpec  `json:"sections" yaml:"sections"`
	Nodes       []NodeSpec     `json:"nodes" yaml:"nodes"`
	Beams       []BeamSpec     `json:"beams" yaml:"beams"`
	Actions     []ActionSpec   `json:"actions,omitempty" yaml:"actions,omitempty"`

	// File ids to model ids, filled by Build.
	nodeIDs map[int]NodeID
	beamIDs map[int]BeamID
}

// MaterialSpec defines a material explicitly or from a preset
// ("steel" or "concrete" with Fc).
type MaterialSpec struct {
	Name   string  `json:"name" yaml:"name"`
	Preset string  `json:"preset,omitempty" yaml:"preset,omitempty"`
	Fc     float64 `json:"fc,omitempty" yaml:"fc,omitempty"`
	E      float64 `json:"e,omitempty" yaml:"e,omitempty"`
	Nu     float64 `json:"nu,omitempty" yaml:"nu,omitempty"`
}

// SectionSpec names a section.
type SectionSpec struct {
	Name         string `json:"name" yaml:"name"`
	section.Spec `yaml:",inline"`
}

// NodeSpec places a node by coordinates, relative to another node, or on
// a beam. File ids are positive labels; see File.NodeID. A zero
// RelativeTo or Beam means no reference.
type NodeSpec struct {
	ID         int     `json:"id" yaml:"id"`
	X          float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y          float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Z          float64 `json:"z,omitempty" yaml:"z,omitempty"`
	RelativeTo int     `json:"relative_to,omitempty" yaml:"relative_to,omitempty"`
	Beam       int     `json:"beam,omitempty" yaml:"beam,omitempty"`
	Position   float64 `json:"position,omitempty" yaml:"position,omitempty"`
	Support    string  `json:"support,omitempty" yaml:"support,omitempty"`
}

// BeamSpec defines a beam. Releases are "rigid", "hinge" or a spring
// stiffness such as "spring:1e9".
type BeamSpec struct {
	ID       int         `json:"id" yaml:"id"`
	Start    int         `json:"start" yaml:"start"`
	End      int         `json:"end" yaml:"end"`
	Section  string      `json:"section" yaml:"section"`
	Material string      `json:"material" yaml:"material"`
	Angle    float64     `json:"angle,omitempty" yaml:"angle,omitempty"`
	Release  ReleaseSpec `json:"release,omitempty" yaml:"release,omitempty"`
}

// ReleaseSpec holds the four bending releases of a beam.
type ReleaseSpec struct {
	StartY string `json:"start_y,omitempty" yaml:"start_y,omitempty"`
	StartZ string `json:"start_z,omitempty" yaml:"start_z,omitempty"`
	EndY   string `json:"end_y,omitempty" yaml:"end_y,omitempty"`
	EndZ   string `json:"end_z,omitempty" yaml:"end_z,omitempty"`
}

// ActionSpec defines a load case.
type ActionSpec struct {
	Name     string     `json:"name" yaml:"name"`
	Category string     `json:"category,omitempty" yaml:"category,omitempty"`
	Psi      [3]float64 `json:"psi,omitempty" yaml:"psi,omitempty"`
	Loads    []LoadSpec `json:"loads" yaml:"loads"`
}

// LoadSpec defines a load: "nodal", "point" or "distributed".
type LoadSpec struct {
	Type     string          `json:"type" yaml:"type"`
	Node     int             `json:"node,omitempty" yaml:"node,omitempty"`
	Beam     int             `json:"beam,omitempty" yaml:"beam,omitempty"`
	Position float64         `json:"position,omitempty" yaml:"position,omitempty"`
	A        float64         `json:"a,omitempty" yaml:"a,omitempty"`
	B        float64         `json:"b,omitempty" yaml:"b,omitempty"`
	Local    bool            `json:"local,omitempty" yaml:"local,omitempty"`
	F        [NumDOF]float64 `json:"f" yaml:"f"`
}

// ValidationError reports an inconsistent model file
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func invalidFile(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// LoadFromFile reads a model from a JSON or YAML file, chosen by extension.
func LoadFromFile(path string) (*Model, *File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	m, err := f.Build()
	if err != nil {
		return nil, nil, err
	}
	return m, &f, nil
}

// SaveToFile writes f as JSON or YAML, chosen by extension.
func SaveToFile(path string, f *File) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(f)
	default:
		data, err = json.MarshalIndent(f, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ParseSupport reads a support as six 0/1 flags ("111000"), or one of
// "fixed", "pinned" and "free".
func ParseSupport(s string) (*Support, error) {
	switch strings.ToLower(s) {
	case "", "free":
		return nil, nil
	case "fixed":
		sup := Fixed
		return &sup, nil
	case "pinned":
		sup := Pinned
		return &sup, nil
	}
	if len(s) != NumDOF {
		return nil, invalidFile("support %q must have %d flags", s, NumDOF)
	}
	var sup Support
	for i, c := range s {
		switch c {
		case '1':
			sup[i] = true
		case '0':
		default:
			return nil, invalidFile("support %q: flag %q is not 0 or 1", s, c)
		}
	}
	return &sup, nil
}

// ParseRelease reads "rigid", "hinge" or "spring:<stiffness>".
func ParseRelease(s string) (Release, error) {
	kind, arg, _ := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")
	switch kind {
	case "", "rigid":
		return Release{Kind: Rigid}, nil
	case "hinge":
		return Release{Kind: Hinge}, nil
	case "spring":
		k, err := strconv.ParseFloat(arg, 64)
		if err != nil || !(k > 0) {
			return Release{}, invalidFile("release %q needs a positive stiffness", s)
		}
		return Release{Kind: Spring, Stiffness: k}, nil
	}
	return Release{}, invalidFile("unknown release %q", s)
}

// Build creates a model from the file. Nodes and beams may be listed in any
// order: a node is added once its beam or reference node exists and a beam
// once both its end nodes exist.
func (f *File) Build() (*Model, error) {
	m := New()

	materials := make(map[string]Material, len(f.Materials))
	for _, ms := range f.Materials {
		mat, err := ms.material()
		if err != nil {
			return nil, err
		}
		materials[ms.Name] = mat
	}

	sections := make(map[string]section.Section, len(f.Sections))
	for _, ss := range f.Sections {
		sec, err := ss.Build()
		if err != nil {
			return nil, invalidFile("section %q: %v", ss.Name, err)
		}
		sections[ss.Name] = sec
	}

	nodeIDs := make(map[int]NodeID, len(f.Nodes))
	beamIDs := make(map[int]BeamID, len(f.Beams))

	addNode := func(ns NodeSpec) error {
		if _, dup := nodeIDs[ns.ID]; dup {
			return invalidFile("duplicate node id %d", ns.ID)
		}
		var p Placement
		switch {
		case ns.Beam != 0:
			b, ok := beamIDs[ns.Beam]
			if !ok {
				return invalidFile("node %d: unknown beam %d", ns.ID, ns.Beam)
			}
			p = OnBeam{Beam: b, Position: ns.Position}
		case ns.RelativeTo != 0:
			ref, ok := nodeIDs[ns.RelativeTo]
			if !ok {
				return invalidFile("node %d: unknown reference node %d", ns.ID, ns.RelativeTo)
			}
			p = Free{X: ns.X, Y: ns.Y, Z: ns.Z, Relative: &ref}
		default:
			p = Free{X: ns.X, Y: ns.Y, Z: ns.Z}
		}
		id, err := m.AddNode(p)
		if err != nil {
			return fmt.Errorf("node %d: %w", ns.ID, err)
		}
		sup, err := ParseSupport(ns.Support)
		if err != nil {
			return fmt.Errorf("node %d: %w", ns.ID, err)
		}
		if err := m.SetSupport(id, sup); err != nil {
			return err
		}
		nodeIDs[ns.ID] = id
		return nil
	}

	if err := f.checkIDs(); err != nil {
		return nil, err
	}

	// Nodes and beams are added as soon as what they reference exists, so a
	// beam may start or end at a node placed on another beam.
	nodes, beams := slices.Clone(f.Nodes), slices.Clone(f.Beams)
	for len(nodes) > 0 || len(beams) > 0 {
		progress := false
		var nextNodes []NodeSpec
		for _, ns := range nodes {
			if !nodeReady(ns, nodeIDs, beamIDs) {
				nextNodes = append(nextNodes, ns)
				continue
			}
			if err := addNode(ns); err != nil {
				return nil, err
			}
			progress = true
		}
		var nextBeams []BeamSpec
		for _, bs := range beams {
			_, okStart := nodeIDs[bs.Start]
			_, okEnd := nodeIDs[bs.End]
			if !okStart || !okEnd {
				nextBeams = append(nextBeams, bs)
				continue
			}
			if err := f.addBeam(m, bs, nodeIDs, beamIDs, sections, materials); err != nil {
				return nil, err
			}
			progress = true
		}
		if !progress {
			return nil, unresolved(nextNodes, nextBeams, nodeIDs, beamIDs)
		}
		nodes, beams = nextNodes, nextBeams
	}

	f.nodeIDs, f.beamIDs = nodeIDs, beamIDs
	for _, as := range f.Actions {
		id, err := m.AddAction(as.Name, as.Category, as.Psi)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", as.Name, err)
		}
		for k, ls := range as.Loads {
			l, err := ls.load(nodeIDs, beamIDs)
			if err != nil {
				return nil, fmt.Errorf("action %q load %d: %w", as.Name, k+1, err)
			}
			if err := m.AddLoad(id, l); err != nil {
				return nil, fmt.Errorf("action %q load %d: %w", as.Name, k+1, err)
			}
		}
	}
	return m, nil
}

// NodeID returns the model id of a file node after Build.
func (f *File) NodeID(fileID int) (NodeID, error) {
	id, ok := f.nodeIDs[fileID]
	if !ok {
		return 0, notFound("node", fileID)
	}
	return id, nil
}

// BeamID returns the model id of a file beam after Build.
func (f *File) BeamID(fileID int) (BeamID, error) {
	id, ok := f.beamIDs[fileID]
	if !ok {
		return 0, notFound("beam", fileID)
	}
	return id, nil
}

// FileNodeID returns the file id of a model node, or the model id itself
// when the node did not come from f.
func (f *File) FileNodeID(id NodeID) int {
	for k, v := range f.nodeIDs {
		if v == id {
			return k
		}
	}
	return int(id)
}

// checkIDs rejects non-positive ids, since 0 stands for "no reference" in
// NodeSpec.RelativeTo and NodeSpec.Beam.
func (f *File) checkIDs() error {
	for _, ns := range f.Nodes {
		if ns.ID <= 0 {
			return invalidFile("node id %d: ids must be positive", ns.ID)
		}
	}
	for _, bs := range f.Beams {
		if bs.ID <= 0 {
			return invalidFile("beam id %d: ids must be positive", bs.ID)
		}
	}
	return nil
}

func nodeReady(ns NodeSpec, nodeIDs map[int]NodeID, beamIDs map[int]BeamID) bool {
	if ns.Beam != 0 {
		if _, ok := beamIDs[ns.Beam]; !ok {
			return false
		}
	}
	if ns.RelativeTo != 0 {
		if _, ok := nodeIDs[ns.RelativeTo]; !ok {
			return false
		}
	}
	return true
}

// unresolved reports the first reference that a full pass of Build could
// not satisfy, either because it is missing or because it is circular.
func unresolved(nodes []NodeSpec, beams []BeamSpec, nodeIDs map[int]NodeID, beamIDs map[int]BeamID) error {
	if len(nodes) > 0 {
		ns := nodes[0]
		if _, ok := beamIDs[ns.Beam]; ns.Beam != 0 && !ok {
			return invalidFile("node %d: unknown or circular beam %d", ns.ID, ns.Beam)
		}
		return invalidFile("node %d: unknown or circular reference node %d", ns.ID, ns.RelativeTo)
	}
	bs := beams[0]
	if _, ok := nodeIDs[bs.Start]; !ok {
		return invalidFile("beam %d: unknown start node %d", bs.ID, bs.Start)
	}
	return invalidFile("beam %d: unknown end node %d", bs.ID, bs.End)
}

func (f *File) addBeam(m *Model, bs BeamSpec, nodeIDs map[int]NodeID, beamIDs map[int]BeamID,
	sections map[string]section.Section, materials map[string]Material) error {
	if _, dup := beamIDs[bs.ID]; dup {
		return invalidFile("duplicate beam id %d", bs.ID)
	}
	start, ok := nodeIDs[bs.Start]
	if !ok {
		return invalidFile("beam %d: unknown start node %d", bs.ID, bs.Start)
	}
	end, ok := nodeIDs[bs.End]
	if !ok {
		return invalidFile("beam %d: unknown end node %d", bs.ID, bs.End)
	}
	sec, ok := sections[bs.Section]
	if !ok {
		return invalidFile("beam %d: unknown section %q", bs.ID, bs.Section)
	}
	mat, ok := materials[bs.Material]
	if !ok {
		return invalidFile("beam %d: unknown material %q", bs.ID, bs.Material)
	}

	id, err := m.AddBeam(start, end, sec, mat)
	if err != nil {
		return fmt.Errorf("beam %d: %w", bs.ID, err)
	}
	b, _ := m.Beam(id)
	b.Angle = bs.Angle
	for _, r := range []struct {
		spec string
		dst  *Release
	}{
		{bs.Release.StartY, &b.ReleaseStart.Y},
		{bs.Release.StartZ, &b.ReleaseStart.Z},
		{bs.Release.EndY, &b.ReleaseEnd.Y},
		{bs.Release.EndZ, &b.ReleaseEnd.Z},
	} {
		if *r.dst, err = ParseRelease(r.spec); err != nil {
			return fmt.Errorf("beam %d: %w", bs.ID, err)
		}
	}
	if err := m.UpdateBeam(b); err != nil {
		return fmt.Errorf("beam %d: %w", bs.ID, err)
	}
	beamIDs[bs.ID] = id
	return nil
}

func (ms MaterialSpec) material() (Material, error) {
	var mat Material
	switch strings.ToLower(ms.Preset) {
	case "steel":
		mat = Steel()
	case "concrete":
		if !(ms.Fc > 0) {
			return Material{}, invalidFile("material %q: concrete preset needs fc", ms.Name)
		}
		mat = Concrete(ms.Fc)
	case "":
		mat = Material{E: ms.E, Nu: ms.Nu}
	default:
		return Material{}, invalidFile("material %q: unknown preset %q", ms.Name, ms.Preset)
	}
	mat.Name = ms.Name
	if ms.Preset != "" && ms.E > 0 {
		mat.E = ms.E
	}
	if err := mat.Validate(); err != nil {
		return Material{}, invalidFile("%v", err)
	}
	return mat, nil
}

func (ls LoadSpec) load(nodeIDs map[int]NodeID, beamIDs map[int]BeamID) (Load, error) {
	beam := func() (BeamID, error) {
		b, ok := beamIDs[ls.Beam]
		if !ok {
			return 0, invalidFile("unknown beam %d", ls.Beam)
		}
		return b, nil
	}
	switch strings.ToLower(ls.Type) {
	case "nodal":
		n, ok := nodeIDs[ls.Node]
		if !ok {
			return nil, invalidFile("unknown node %d", ls.Node)
		}
		return NodalLoad{Node: n, F: ls.F}, nil
	case "point":
		b, err := beam()
		if err != nil {
			return nil, err
		}
		return PointLoad{Beam: b, Position: ls.Position, Local: ls.Local, F: ls.F}, nil
	case "distributed", "uniform":
		b, err := beam()
		if err != nil {
			return nil, err
		}
		return DistributedLoad{Beam: b, A: ls.A, B: ls.B, Local: ls.Local, F: ls.F}, nil
	}
	return nil, invalidFile("unknown load type %q", ls.Type)
}
