// Package scene defines the YAML world-description format consumed by the
// reference backend and validates it before any entities are built.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultTimestep = 0.01

// Scene is one world description file.
type Scene struct {
	Name            string       `yaml:"name"`
	PhysicsTimestep float64      `yaml:"physics_timestep"`
	Objects         []ObjectSpec `yaml:"objects"`
	Robots          []ObjectSpec `yaml:"robots"`
}

// ObjectSpec describes one object or robot.
type ObjectSpec struct {
	Name   string      `yaml:"name"`
	Static bool        `yaml:"static"`
	Pose   []float64   `yaml:"pose"` // x y z rx ry rz; empty means identity
	Links  []LinkSpec  `yaml:"links"`
	Joints []JointSpec `yaml:"joints"`
}

// LinkSpec describes one link and its collision geometry.
type LinkSpec struct {
	Name   string    `yaml:"name"`
	Shape  ShapeSpec `yaml:"shape"`
	Origin []float64 `yaml:"origin"` // shape offset in the link frame
}

// ShapeSpec is the collision geometry of a link. Type is "sphere", "box"
// or "none".
type ShapeSpec struct {
	Type    string    `yaml:"type"`
	Radius  float64   `yaml:"radius"`
	Extents []float64 `yaml:"extents"` // box half extents
}

// JointSpec connects two links of the same object.
type JointSpec struct {
	Name               string    `yaml:"name"`
	Type               string    `yaml:"type"` // revolute or prismatic
	Parent             string    `yaml:"parent"`
	Child              string    `yaml:"child"`
	Origin             []float64 `yaml:"origin"` // joint frame in the parent link frame
	Axis               []float64 `yaml:"axis"`
	PositionLimits     []float64 `yaml:"position_limits"`
	VelocityLimits     []float64 `yaml:"velocity_limits"`
	AccelerationLimits []float64 `yaml:"acceleration_limits"`
}

// Default returns an empty scene with the default timestep.
func Default() *Scene {
	return &Scene{
		Name:            "world",
		PhysicsTimestep: DefaultTimestep,
	}
}

// Load reads, parses and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a scene description.
func Parse(data []byte) (*Scene, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the scene back to a file.
func Save(path string, s *Scene) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks structural consistency: unique names, joints referencing
// existing links, a single link-tree root per object, well-formed pose and
// limit vectors.
func (s *Scene) Validate() error {
	if s.PhysicsTimestep <= 0 {
		return fmt.Errorf("scene: physics_timestep must be positive, got %f", s.PhysicsTimestep)
	}
	seen := make(map[string]bool)
	for _, spec := range append(append([]ObjectSpec{}, s.Objects...), s.Robots...) {
		if spec.Name == "" {
			return fmt.Errorf("scene: object with empty name")
		}
		if seen[spec.Name] {
			return fmt.Errorf("scene: duplicate object name %q", spec.Name)
		}
		seen[spec.Name] = true
		if err := spec.validate(); err != nil {
			return fmt.Errorf("scene: object %q: %w", spec.Name, err)
		}
	}
	return nil
}

func (spec *ObjectSpec) validate() error {
	if len(spec.Pose) != 0 && len(spec.Pose) != 6 {
		return fmt.Errorf("pose must have 6 entries, got %d", len(spec.Pose))
	}
	if len(spec.Links) == 0 {
		return fmt.Errorf("needs at least one link")
	}
	links := make(map[string]bool, len(spec.Links))
	for _, l := range spec.Links {
		if l.Name == "" {
			return fmt.Errorf("link with empty name")
		}
		if links[l.Name] {
			return fmt.Errorf("duplicate link name %q", l.Name)
		}
		links[l.Name] = true
		switch l.Shape.Type {
		case "", "none":
		case "sphere":
			if l.Shape.Radius <= 0 {
				return fmt.Errorf("link %q: sphere radius must be positive", l.Name)
			}
		case "box":
			if len(l.Shape.Extents) != 3 {
				return fmt.Errorf("link %q: box extents must have 3 entries", l.Name)
			}
		default:
			return fmt.Errorf("link %q: unknown shape type %q", l.Name, l.Shape.Type)
		}
		if len(l.Origin) != 0 && len(l.Origin) != 6 {
			return fmt.Errorf("link %q: origin must have 6 entries", l.Name)
		}
	}

	joints := make(map[string]bool, len(spec.Joints))
	hasParent := make(map[string]bool)
	for _, j := range spec.Joints {
		if j.Name == "" {
			return fmt.Errorf("joint with empty name")
		}
		if joints[j.Name] {
			return fmt.Errorf("duplicate joint name %q", j.Name)
		}
		joints[j.Name] = true
		if j.Type != "revolute" && j.Type != "prismatic" {
			return fmt.Errorf("joint %q: unknown type %q", j.Name, j.Type)
		}
		if !links[j.Parent] {
			return fmt.Errorf("joint %q: unknown parent link %q", j.Name, j.Parent)
		}
		if !links[j.Child] {
			return fmt.Errorf("joint %q: unknown child link %q", j.Name, j.Child)
		}
		if j.Parent == j.Child {
			return fmt.Errorf("joint %q: parent and child are the same link", j.Name)
		}
		if hasParent[j.Child] {
			return fmt.Errorf("joint %q: link %q already has a parent joint", j.Name, j.Child)
		}
		hasParent[j.Child] = true
		if len(j.Axis) != 3 {
			return fmt.Errorf("joint %q: axis must have 3 entries", j.Name)
		}
		if len(j.Origin) != 0 && len(j.Origin) != 6 {
			return fmt.Errorf("joint %q: origin must have 6 entries", j.Name)
		}
		for _, lim := range [][]float64{j.PositionLimits, j.VelocityLimits, j.AccelerationLimits} {
			if len(lim) != 0 && len(lim) != 2 {
				return fmt.Errorf("joint %q: limits must be [min, max] pairs", j.Name)
			}
			if len(lim) == 2 && lim[0] > lim[1] {
				return fmt.Errorf("joint %q: limit min exceeds max", j.Name)
			}
		}
	}

	// Exactly one root: a link with no parent joint.
	root := ""
	roots := 0
	for name := range links {
		if !hasParent[name] {
			root = name
			roots++
		}
	}
	if roots != 1 {
		return fmt.Errorf("link tree must have exactly one root, found %d", roots)
	}

	// Every link must be reachable from the root; an unreachable link with
	// a parent joint means a cycle.
	children := make(map[string][]string)
	for _, j := range spec.Joints {
		children[j.Parent] = append(children[j.Parent], j.Child)
	}
	visited := map[string]bool{root: true}
	queue := []string{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range children[cur] {
			if !visited[c] {
				visited[c] = true
				queue = append(queue, c)
			}
		}
	}
	if len(visited) != len(links) {
		return fmt.Errorf("link tree contains a cycle or disconnected links")
	}
	return nil
}
