package system

import (
	"math"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

// CollisionHandler receives the overlapping pair ordered to match rule
// registration: the first entity carries the rule's first tag.
type CollisionHandler func(w *ecs.World, a, b ecs.Entity)

type collisionRule struct {
	tagA    component.Tag
	tagB    component.Tag
	handler CollisionHandler
}

// CollisionSystem pairs entities by declared tag-pair rules and runs a
// narrow shape test on each candidate pair. A given unordered pair
// triggers at most one handler per frame: the first matching rule in
// registration order wins, even when both entities carry several
// matching tags.
type CollisionSystem struct {
	rules []collisionRule
}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{}
}

// RegisterRule maps an unordered tag pair to a handler. Registration
// order is evaluation order.
func (s *CollisionSystem) RegisterRule(tagA, tagB component.Tag, handler CollisionHandler) {
	if handler == nil {
		return
	}
	s.rules = append(s.rules, collisionRule{tagA: tagA, tagB: tagB, handler: handler})
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if s == nil || w == nil || len(s.rules) == 0 {
		return
	}

	type candidate struct {
		e    ecs.Entity
		tags component.Tag
		col  *component.Collider
		t    *component.Transform
	}
	candidates := make([]candidate, 0, 64)
	ecs.ForEach3(w, component.ColliderComponent, component.TagsComponent, component.TransformComponent,
		func(e ecs.Entity, col *component.Collider, tags *component.Tags, t *component.Transform) {
			candidates = append(candidates, candidate{e: e, tags: tags.Mask, col: col, t: t})
		})

	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			// handlers may destroy either entity mid-frame
			if !w.IsAlive(a.e) || !w.IsAlive(b.e) {
				continue
			}
			for _, rule := range s.rules {
				first, second, ok := matchRule(rule, a.e, a.tags, b.e, b.tags)
				if !ok {
					continue
				}
				if Overlaps(a.col, a.t, b.col, b.t) {
					rule.handler(w, first, second)
				}
				break // at most one dispatch per unordered pair
			}
		}
	}
}

func matchRule(rule collisionRule, ea ecs.Entity, ta component.Tag, eb ecs.Entity, tb component.Tag) (ecs.Entity, ecs.Entity, bool) {
	if ta&rule.tagA != 0 && tb&rule.tagB != 0 {
		return ea, eb, true
	}
	if tb&rule.tagA != 0 && ta&rule.tagB != 0 {
		return eb, ea, true
	}
	return 0, 0, false
}

// Overlaps runs the narrow-phase shape test: circle-circle by distance,
// anything involving a box by axis-aligned overlap of bounding boxes.
func Overlaps(ca *component.Collider, ta *component.Transform, cb *component.Collider, tb *component.Transform) bool {
	if ca == nil || cb == nil || ta == nil || tb == nil {
		return false
	}
	if ca.Shape == component.ShapeCircle && cb.Shape == component.ShapeCircle {
		return ta.Pos.DistanceTo(tb.Pos) <= ca.Radius+cb.Radius
	}
	aw, ah := ca.HalfExtents()
	bw, bh := cb.HalfExtents()
	return math.Abs(ta.Pos.X-tb.Pos.X) <= aw+bw &&
		math.Abs(ta.Pos.Y-tb.Pos.Y) <= ah+bh
}
