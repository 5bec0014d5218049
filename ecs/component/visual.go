package component

// Visual carries the transient fields the renderer samples each frame:
// damage flash intensity, draw scale, and alpha. The simulation owns
// and decays them; the renderer only reads.
type Visual struct {
	Flash float64 // 0..1, decays per frame
	Scale float64
	Alpha float64
}

func NewVisual() Visual {
	return Visual{Scale: 1, Alpha: 1}
}

var VisualComponent = NewComponent[Visual]()
