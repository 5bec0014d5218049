package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

func spawnTagged(t *testing.T, w *ecs.World, tags component.Tag, pos common.Vec2, radius float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, component.Transform{Pos: pos}))
	require.NoError(t, ecs.Add(w, e, component.ColliderComponent, component.Collider{
		Shape: component.ShapeCircle, Radius: radius, Trigger: true,
	}))
	require.NoError(t, ecs.Add(w, e, component.TagsComponent, component.Tags{Mask: tags}))
	return e
}

func TestCollisionRuleFiresOncePerPair(t *testing.T) {
	w := ecs.NewWorld()
	cs := NewCollisionSystem()

	calls := 0
	cs.RegisterRule(component.TagPlayer, component.TagEnemy, func(w *ecs.World, a, b ecs.Entity) {
		calls++
	})

	spawnTagged(t, w, component.TagPlayer, common.Vec2{X: 0, Y: 0}, 10)
	spawnTagged(t, w, component.TagEnemy, common.Vec2{X: 5, Y: 0}, 10)

	cs.Update(w)
	assert.Equal(t, 1, calls, "one overlap frame, one dispatch")

	cs.Update(w)
	assert.Equal(t, 2, calls, "sustained overlap redispatches next frame")
}

func TestCollisionFirstMatchingRuleWins(t *testing.T) {
	w := ecs.NewWorld()
	cs := NewCollisionSystem()

	var fired []string
	cs.RegisterRule(component.TagPlayer, component.TagEnemy, func(w *ecs.World, a, b ecs.Entity) {
		fired = append(fired, "first")
	})
	cs.RegisterRule(component.TagPlayer, component.TagSolid, func(w *ecs.World, a, b ecs.Entity) {
		fired = append(fired, "second")
	})

	spawnTagged(t, w, component.TagPlayer, common.Vec2{}, 10)
	// carries both tags; only the earlier-registered rule may run
	spawnTagged(t, w, component.TagEnemy|component.TagSolid, common.Vec2{X: 4}, 10)

	cs.Update(w)
	assert.Equal(t, []string{"first"}, fired)
}

func TestCollisionHandlerArgsFollowRegistrationOrder(t *testing.T) {
	w := ecs.NewWorld()
	cs := NewCollisionSystem()

	player := spawnTagged(t, w, component.TagPlayer, common.Vec2{X: 4}, 10)
	enemy := spawnTagged(t, w, component.TagEnemy, common.Vec2{}, 10)

	cs.RegisterRule(component.TagPlayer, component.TagEnemy, func(w *ecs.World, a, b ecs.Entity) {
		assert.Equal(t, player, a, "first arg carries the rule's first tag")
		assert.Equal(t, enemy, b)
	})
	cs.Update(w)
}

func TestCollisionNoDispatchWithoutOverlap(t *testing.T) {
	w := ecs.NewWorld()
	cs := NewCollisionSystem()

	calls := 0
	cs.RegisterRule(component.TagPlayer, component.TagEnemy, func(w *ecs.World, a, b ecs.Entity) { calls++ })

	spawnTagged(t, w, component.TagPlayer, common.Vec2{}, 10)
	spawnTagged(t, w, component.TagEnemy, common.Vec2{X: 100}, 10)

	cs.Update(w)
	assert.Zero(t, calls)
}

func TestCollisionSkipsEntitiesDestroyedByEarlierHandler(t *testing.T) {
	w := ecs.NewWorld()
	cs := NewCollisionSystem()

	calls := 0
	cs.RegisterRule(component.TagPlayerBullet, component.TagEnemy, func(w *ecs.World, bullet, enemy ecs.Entity) {
		calls++
		w.DestroyEntity(bullet)
	})

	// one bullet overlapping two enemies: after the first dispatch the
	// bullet is dead and must not hit the second
	spawnTagged(t, w, component.TagPlayerBullet, common.Vec2{}, 6)
	spawnTagged(t, w, component.TagEnemy, common.Vec2{X: 3}, 10)
	spawnTagged(t, w, component.TagEnemy, common.Vec2{X: -3}, 10)

	cs.Update(w)
	assert.Equal(t, 1, calls)
}

func TestOverlapsShapes(t *testing.T) {
	circle := func(r float64) *component.Collider {
		return &component.Collider{Shape: component.ShapeCircle, Radius: r}
	}
	box := func(w, h float64) *component.Collider {
		return &component.Collider{Shape: component.ShapeBox, Width: w, Height: h}
	}
	at := func(x, y float64) *component.Transform {
		return &component.Transform{Pos: common.Vec2{X: x, Y: y}}
	}

	assert.True(t, Overlaps(circle(10), at(0, 0), circle(10), at(19, 0)))
	assert.False(t, Overlaps(circle(10), at(0, 0), circle(10), at(21, 0)))
	// diagonal: circles at 45 degrees just out of reach
	assert.False(t, Overlaps(circle(10), at(0, 0), circle(10), at(15, 15)))

	assert.True(t, Overlaps(box(40, 20), at(0, 0), circle(5), at(24, 0)))
	assert.False(t, Overlaps(box(40, 20), at(0, 0), circle(5), at(26, 0)))
	assert.True(t, Overlaps(box(20, 20), at(0, 0), box(20, 20), at(19, 19)))
	assert.False(t, Overlaps(box(20, 20), at(0, 0), box(20, 20), at(21, 0)))
}
