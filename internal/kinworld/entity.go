package kinworld

import "github.com/robokit/simenv/internal/simenv"

// entityCore carries the entity-level state shared by objects, links and
// joints. Names are fixed at construction.
type entityCore struct {
	name  string
	etype simenv.EntityType
	tf    simenv.Transform
	world *World
}

func (e *entityCore) Name() string                { return e.name }
func (e *entityCore) Type() simenv.EntityType     { return e.etype }
func (e *entityCore) Transform() simenv.Transform { return e.tf }

func (e *entityCore) World() simenv.World {
	if e.world == nil {
		return nil
	}
	return e.world
}
