package input

// Rotator accumulates view angles from pointer drag deltas. Angles are
// in degrees (one pixel of drag = one degree) and grow without bound;
// the model-view composition takes care of the wrap-around.
type Rotator struct {
	// Azimuth is the horizontal view angle, Elevation the vertical.
	Azimuth   float32
	Elevation float32

	lastX    float32
	lastY    float32
	dragging bool
}

// Pointer feeds one pointer sample into the rotator. While the drag
// button stays held across consecutive samples, the position delta is
// added to the angles. The first sample of a drag only anchors the
// position, and samples with the button up never change the angles.
func (r *Rotator) Pointer(x, y float32, held bool) {
	if held && r.dragging {
		r.Azimuth += x - r.lastX
		r.Elevation += y - r.lastY
	}
	r.lastX = x
	r.lastY = y
	r.dragging = held
}

// Dragging reports whether the drag button was held at the last sample.
func (r *Rotator) Dragging() bool {
	return r.dragging
}
