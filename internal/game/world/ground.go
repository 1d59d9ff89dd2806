package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/grove/pkg/math"
)

// Ground is the tiled floor and the navigable volume above it.
// HalfExtents are distances from the origin to each face of the volume:
// X and Z bound the walkable area, Y is the jump ceiling.
type Ground struct {
	HalfExtents mgl32.Vec3
	FloorLevel  float32
	Color       mgl32.Vec4
}

// Tile is one unit quad of the ground, identified by its integer offset.
type Tile struct {
	X, Z int
}

// ModelMatrix places the unit quad at the tile offset.
func (t Tile) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(float32(t.X), 0, float32(t.Z))
}

// TileRange returns the integer tile span per axis.
func (g Ground) TileRange() (nx, nz int) {
	return int(g.HalfExtents.X()), int(g.HalfExtents.Z())
}

// TileCount returns the number of tiles Tiles yields.
func (g Ground) TileCount() int {
	nx, nz := g.TileRange()
	return (2*nx + 1) * (2*nz + 1)
}

// Tiles returns every tile offset in [-nx, nx] x [-nz, nz], rows of x for each z.
func (g Ground) Tiles() []Tile {
	nx, nz := g.TileRange()
	tiles := make([]Tile, 0, g.TileCount())
	for z := -nz; z <= nz; z++ {
		for x := -nx; x <= nx; x++ {
			tiles = append(tiles, Tile{X: x, Z: z})
		}
	}
	return tiles
}

// InBounds reports whether p lies within the horizontal extents. The limit
// itself is inside.
func (g Ground) InBounds(p mgl32.Vec3) bool {
	hx, hz := g.HalfExtents.X(), g.HalfExtents.Z()
	return p.X() >= -hx && p.X() <= hx && p.Z() >= -hz && p.Z() <= hz
}

// Ceiling returns the highest eye height a jump may reach.
func (g Ground) Ceiling() float32 {
	return g.HalfExtents.Y()
}

// ClampHeight limits y to [FloorLevel, Ceiling].
func (g Ground) ClampHeight(y float32) float32 {
	return math.Clamp(y, g.FloorLevel, g.Ceiling())
}

// Contains reports whether p lies inside the whole navigable volume.
func (g Ground) Contains(p mgl32.Vec3) bool {
	return g.InBounds(p) && p.Y() >= g.FloorLevel && p.Y() <= g.Ceiling()
}

func (g Ground) validate() error {
	for i, axis := range []string{"x", "y", "z"} {
		v := g.HalfExtents[i]
		if !math.IsFinite(v) || v <= 0 {
			return configErrorf("ground.half_extents."+axis, "must be a positive number, got %v", v)
		}
	}
	if !math.IsFinite(g.FloorLevel) {
		return configErrorf("ground.floor_level", "must be finite")
	}
	if g.FloorLevel > g.Ceiling() {
		return configErrorf("ground.floor_level", "%v is above the ceiling %v", g.FloorLevel, g.Ceiling())
	}
	return nil
}
