package depth

import "github.com/matzehuels/depthplot/pkg/scene"

// Layout constants. They define the plot's look and must not drift.
const (
	// SceneUnitLength is the edge of one scene unit.
	SceneUnitLength = 0.4

	// AxisColor is the color of the axis bar and its ticks.
	AxisColor scene.Color = 0x888888

	// AxisTickLength is the tick height in scene units.
	AxisTickLength = 10

	// BlockLength is the block edge in scene units.
	BlockLength = 2

	// DefaultOpacity is the opacity of an unselected block.
	DefaultOpacity = 0.5

	// SelectedOpacity is the opacity of a selected block.
	SelectedOpacity = 1.0

	// GraphStartYear and GraphEndYear bound the time window (inclusive).
	GraphStartYear = 1300
	GraphEndYear   = 2020

	// TickInterval is the number of years between axis ticks.
	TickInterval = 100

	// Offset is half the time window in years. Subtracting it centers the
	// timeline on X = 0.
	Offset = (GraphEndYear - GraphStartYear) / 2
)

// blockEdge is the block edge length in scene coordinates.
const blockEdge = BlockLength * SceneUnitLength

// InTimeWindow reports whether year lies in [GraphStartYear, GraphEndYear].
func InTimeWindow(year int) bool {
	return year >= GraphStartYear && year <= GraphEndYear
}

// XPosition returns the X coordinate of a block or tick for year.
func XPosition(year int) float64 {
	return float64(year-GraphStartYear-Offset) * SceneUnitLength
}

// YPosition returns the Y coordinate of a block with the given depth rank:
// half a block above the axis plus one unit per rank.
func YPosition(rank float64) float64 {
	return blockEdge/2 + rank*SceneUnitLength
}

// TickYears returns the years that get an axis tick: every TickInterval
// from GraphStartYear, strictly below GraphEndYear.
func TickYears() []int {
	var years []int
	for y := GraphStartYear; y < GraphEndYear; y += TickInterval {
		years = append(years, y)
	}
	return years
}

// BlockGeometry returns the translated box for a block at year and rank.
func BlockGeometry(year int, rank float64) scene.BoxGeometry {
	return scene.NewBoxGeometry(blockEdge, blockEdge, blockEdge).
		Translate(XPosition(year), YPosition(rank), 0)
}

// AxisGeometry returns the axis bar spanning the whole time window,
// centered at the origin.
func AxisGeometry() scene.BoxGeometry {
	width := float64(GraphEndYear-GraphStartYear) * SceneUnitLength
	return scene.NewBoxGeometry(width, SceneUnitLength, SceneUnitLength)
}

// TickGeometry returns the tick box for year.
func TickGeometry(year int) scene.BoxGeometry {
	return scene.NewBoxGeometry(SceneUnitLength, AxisTickLength*SceneUnitLength, SceneUnitLength).
		Translate(XPosition(year), 0, 0)
}
