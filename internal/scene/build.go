package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/oni-patrol/internal/config"
	"github.com/Faultbox/oni-patrol/internal/engine/terrain"
	"github.com/Faultbox/oni-patrol/internal/game/world"
	"github.com/Faultbox/oni-patrol/internal/logger"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

// Build creates a world populated from spec. store may be nil.
func Build(cfg *config.Config, spec *Spec, store world.Achievements) (*world.World, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	if spec.Arena != nil {
		c := *cfg
		c.Arena = *spec.Arena
		cfg = &c
	}

	hm, err := buildTerrain(spec.Terrain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	w := world.New(cfg, hm, store)
	for _, o := range spec.Obstacles {
		w.AddObstacle(world.ObstacleSpec{
			Name:        o.Name,
			Center:      o.Center.Vec3(),
			HalfExtents: o.HalfExtents.Vec3(),
			Yaw:         o.Yaw,
		})
	}
	for _, s := range spec.Shrines {
		w.AddShrine(s.Position.Vec3(), s.Yaw)
	}
	w.SpawnPlayer(spec.Player.Position.Vec3(), spec.Player.Yaw)
	for _, e := range spec.Enemies {
		st, _ := enemyState(e.State)
		round := make([]math.Vec3, 0, len(e.Round))
		for _, p := range e.Round {
			round = append(round, p.Vec3())
		}
		w.SpawnEnemy(world.EnemySpec{
			Name:      e.Name,
			Position:  e.Position.Vec3(),
			Yaw:       e.Yaw,
			State:     st,
			Round:     round,
			Encounter: -1,
		})
	}

	logger.Named("scene").Info("scene built",
		zap.String("name", spec.Name),
		zap.Int("enemies", len(spec.Enemies)),
		zap.Int("obstacles", len(spec.Obstacles)),
		zap.Int("shrines", len(spec.Shrines)))
	return w, nil
}

func buildTerrain(t TerrainSpec) (*terrain.Heightmap, error) {
	if len(t.Heights) == 0 {
		return terrain.Flat(t.Flat), nil
	}
	return terrain.New(math.Vec2{X: t.OriginX, Y: t.OriginZ}, t.CellSize, t.Heights)
}

// LoadWorld loads the scene at path and builds it.
func LoadWorld(cfg *config.Config, path string, store world.Achievements) (*world.World, error) {
	spec, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Build(cfg, spec, store)
}
