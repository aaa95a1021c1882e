package arena

// Platform is an immutable collidable rectangle. Layouts are generated once
// per room and never mutated.
type Platform struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// DefaultLayout is the matchmade-arena layout: a full-width ground floor,
// three ascending tiers, a top platform and four narrow stair connectors.
// Every tier is reachable by jumping from the tier below.
func DefaultLayout() []Platform {
	return []Platform{
		// Ground floor
		{X: 0, Y: 500, Width: 800, Height: 20},
		// Level 1
		{X: 50, Y: 420, Width: 200, Height: 15},
		{X: 350, Y: 420, Width: 200, Height: 15},
		{X: 600, Y: 420, Width: 180, Height: 15},
		// Level 2
		{X: 150, Y: 340, Width: 200, Height: 15},
		{X: 450, Y: 340, Width: 200, Height: 15},
		// Level 3
		{X: 100, Y: 260, Width: 250, Height: 15},
		{X: 400, Y: 260, Width: 250, Height: 15},
		// Top level
		{X: 250, Y: 180, Width: 300, Height: 15},
		// Stairs
		{X: 250, Y: 380, Width: 50, Height: 10},
		{X: 550, Y: 380, Width: 50, Height: 10},
		{X: 350, Y: 300, Width: 50, Height: 10},
		{X: 350, Y: 220, Width: 50, Height: 10},
	}
}

// LocalLayout is the tighter layout used for local combat rooms.
func LocalLayout() []Platform {
	return []Platform{
		{X: 50, Y: 500, Width: 700, Height: 20},
		{X: 80, Y: 420, Width: 150, Height: 15},
		{X: 320, Y: 420, Width: 160, Height: 15},
		{X: 570, Y: 420, Width: 150, Height: 15},
		{X: 150, Y: 340, Width: 180, Height: 15},
		{X: 450, Y: 340, Width: 180, Height: 15},
		{X: 100, Y: 260, Width: 200, Height: 15},
		{X: 500, Y: 260, Width: 200, Height: 15},
		{X: 280, Y: 180, Width: 240, Height: 15},
	}
}
