package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCollisionMode(t *testing.T) {
	tests := []struct {
		in   string
		want CollisionMode
	}{
		{"off", CollisionOff},
		{"none", CollisionOff},
		{"Broad", CollisionBroad},
		{"footprint", CollisionFootprint},
		{"", CollisionFootprint},
	}
	for _, tt := range tests {
		got, err := ParseCollisionMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseCollisionMode("sphere")
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "controls.collision", cfgErr.Field)

	assert.Equal(t, "broad", CollisionBroad.String())
	assert.Equal(t, "CollisionMode(9)", CollisionMode(9).String())
}

func TestColliderOff(t *testing.T) {
	c := NewCollider(CollisionOff, Default().Objects)
	for _, p := range []mgl32.Vec3{{0, 0.5, -1}, {4, 0.8, 0}, {0, 0, 0}} {
		assert.False(t, c.Test(p), "%v", p)
	}

	// switching a populated collider off stops every test
	broad := NewCollider(CollisionBroad, Default().Objects)
	require.True(t, broad.Test(mgl32.Vec3{0, 0.5, -1}))
	broad.Mode = CollisionOff
	i, hit := broad.Hit(mgl32.Vec3{0, 0.5, -1})
	assert.False(t, hit)
	assert.Equal(t, -1, i)
}

func TestColliderFootprint(t *testing.T) {
	c := NewCollider(CollisionFootprint, Default().Objects)

	tests := []struct {
		name      string
		candidate mgl32.Vec3
		hit       bool
		index     int
	}{
		{"tree center", mgl32.Vec3{0, 0.5, -1}, true, 0},
		{"inside footprint corner", mgl32.Vec3{0.1, 0.5, -1.1}, true, 0},
		{"east tree", mgl32.Vec3{4.05, 0.5, 0}, true, 1},
		{"beside footprint", mgl32.Vec3{0.2, 0.5, -1}, false, -1},
		{"start position", mgl32.Vec3{0, 0.5, 2.5}, false, -1},
		{"in line with tree on x only", mgl32.Vec3{0, 0.5, 1}, false, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, hit := c.Hit(tt.candidate)
			assert.Equal(t, tt.hit, hit)
			assert.Equal(t, tt.index, i)
			assert.Equal(t, tt.hit, c.Test(tt.candidate))
		})
	}
}

func TestColliderBroad(t *testing.T) {
	c := NewCollider(CollisionBroad, Default().Objects)

	// The first tree maps the start position to local (0, _, 0.25).
	i, hit := c.Hit(mgl32.Vec3{0, 0.5, 2.5})
	assert.True(t, hit)
	assert.Equal(t, 0, i)

	assert.True(t, c.Test(mgl32.Vec3{2, 0.5, 2}), "local z of first tree is 0")
	assert.False(t, c.Test(mgl32.Vec3{3, 0.5, 3}))
}

func TestColliderNil(t *testing.T) {
	var c *Collider
	assert.False(t, c.Test(mgl32.Vec3{}))

	empty := NewCollider(CollisionFootprint, nil)
	assert.False(t, empty.Test(mgl32.Vec3{}))
}
