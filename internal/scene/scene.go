// Package scene loads scene descriptions from YAML and builds worlds from
// them.
package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/oni-patrol/internal/config"
	"github.com/Faultbox/oni-patrol/internal/game/ai"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

// ErrInvalidScene is wrapped by every validation failure.
var ErrInvalidScene = errors.New("invalid scene")

// Vec3Spec is a point in world space.
type Vec3Spec struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Vec3 converts the spec to a vector.
func (v Vec3Spec) Vec3() math.Vec3 { return math.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// Spec is a scene description.
type Spec struct {
	Name      string              `yaml:"name"`
	Arena     *config.ArenaConfig `yaml:"arena"` // Overrides the configured rectangle
	Terrain   TerrainSpec         `yaml:"terrain"`
	Player    *PlayerSpec         `yaml:"player"`
	Enemies   []EnemySpec         `yaml:"enemies"`
	Obstacles []ObstacleSpec      `yaml:"obstacles"`
	Shrines   []ShrineSpec        `yaml:"shrines"`
}

// TerrainSpec is either a flat height or an altitude grid.
type TerrainSpec struct {
	Flat     float32     `yaml:"flat"`
	OriginX  float32     `yaml:"origin_x"`
	OriginZ  float32     `yaml:"origin_z"`
	CellSize float32     `yaml:"cell_size"`
	Heights  [][]float32 `yaml:"heights"` // heights[z][x]; empty means flat
}

type PlayerSpec struct {
	Position Vec3Spec `yaml:"position"`
	Yaw      float32  `yaml:"yaw"`
}

type EnemySpec struct {
	Name     string     `yaml:"name"`
	Position Vec3Spec   `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`
	State    string     `yaml:"state"` // Wait, Round or Patrol; empty means Wait
	Round    []Vec3Spec `yaml:"round"`
}

type ObstacleSpec struct {
	Name        string   `yaml:"name"`
	Center      Vec3Spec `yaml:"center"` // y is an offset above the terrain
	HalfExtents Vec3Spec `yaml:"half_extents"`
	Yaw         float32  `yaml:"yaw"`
}

type ShrineSpec struct {
	Position Vec3Spec `yaml:"position"`
	Yaw      float32  `yaml:"yaw"`
}

// Parse decodes and validates a scene.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("scene: unmarshal: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Load reads the scene at path. An empty path loads the built-in scene.
func Load(path string) (*Spec, error) {
	data := defaultScene
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("scene: load %s: %w", path, err)
		}
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", describe(path), err)
	}
	return spec, nil
}

func describe(path string) string {
	if path == "" {
		return "built-in scene"
	}
	return path
}

// Validate checks the parts a world cannot be built without.
func (s *Spec) Validate() error {
	if s.Player == nil {
		return fmt.Errorf("%w: no player", ErrInvalidScene)
	}
	if a := s.Arena; a != nil && (a.Left >= a.Right || a.Back >= a.Forward) {
		return fmt.Errorf("%w: arena rectangle is empty", ErrInvalidScene)
	}
	if len(s.Terrain.Heights) > 0 && s.Terrain.CellSize <= 0 {
		return fmt.Errorf("%w: terrain grid needs a positive cell_size", ErrInvalidScene)
	}
	for i, e := range s.Enemies {
		if _, err := enemyState(e.State); err != nil {
			return fmt.Errorf("%w: enemy %d: %v", ErrInvalidScene, i, err)
		}
	}
	for i, o := range s.Obstacles {
		h := o.HalfExtents
		if h.X <= 0 || h.Y <= 0 || h.Z <= 0 {
			return fmt.Errorf("%w: obstacle %d: half extents must be positive", ErrInvalidScene, i)
		}
	}
	return nil
}

// enemyState maps a scene state name to an initial behavior state.
func enemyState(name string) (ai.State, error) {
	if name == "" {
		return ai.StateWait, nil
	}
	st, err := ai.ParseState(name)
	if err != nil {
		return st, err
	}
	switch st {
	case ai.StateWait, ai.StateRound, ai.StatePatrol:
		return st, nil
	default:
		return st, fmt.Errorf("%s is not an initial state", name)
	}
}
