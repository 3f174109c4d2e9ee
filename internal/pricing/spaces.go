package pricing

// SpaceLevel classifies remaining capacity for presentation layers.
type SpaceLevel string

const (
	SpaceZero SpaceLevel = "zero"
	SpaceLow  SpaceLevel = "low"
	SpaceOK   SpaceLevel = "ok"
)

// SpaceLevelFor returns zero at 0 spaces and low at 2 or fewer.
func SpaceLevelFor(spaces int) SpaceLevel {
	switch {
	case spaces <= 0:
		return SpaceZero
	case spaces <= 2:
		return SpaceLow
	default:
		return SpaceOK
	}
}
