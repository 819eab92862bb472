package input

// Action is an abstract input intent, independent of any windowing
// library's key codes.
type Action int

const (
	MoveForward Action = iota
	MoveBackward
	TurnLeft
	TurnRight
	PitchUp
	PitchDown
	Fly
	Reverse // modifier: Fly goes backward while held
	Zoom    // modifier: vertical drag zooms the orbit camera
	Rotate  // mouse drag button
	Quit

	actionCount
)

var actionNames = [actionCount]string{
	MoveForward:  "MoveForward",
	MoveBackward: "MoveBackward",
	TurnLeft:     "TurnLeft",
	TurnRight:    "TurnRight",
	PitchUp:      "PitchUp",
	PitchDown:    "PitchDown",
	Fly:          "Fly",
	Reverse:      "Reverse",
	Zoom:         "Zoom",
	Rotate:       "Rotate",
	Quit:         "Quit",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// Latch records held actions and cursor motion between frames.
// Event callbacks write it, the per-frame update reads and drains it.
type Latch struct {
	held [actionCount]bool

	// Cursor state. The first observed position only seeds lastX/lastY.
	seeded       bool
	lastX, lastY float64

	// Accumulated while Rotate is held, zooming or not. Drained by ConsumeDrag.
	dragX, dragY float64

	// +1 per cursor event moving down with Zoom and Rotate held,
	// -1 per event moving up. Drained by ConsumeZoom.
	zoomSteps int
}

// NewLatch returns a latch with no actions held and an unseeded cursor.
func NewLatch() *Latch {
	return &Latch{}
}

// SetAction records the pressed state of an action.
func (l *Latch) SetAction(a Action, pressed bool) {
	if a < 0 || a >= actionCount {
		return
	}
	l.held[a] = pressed
}

// Held reports whether the action is currently pressed.
func (l *Latch) Held(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return l.held[a]
}

// Seeded reports whether a cursor position has been observed yet.
func (l *Latch) Seeded() bool {
	return l.seeded
}

// CursorMoved records a cursor position event. The first event after
// startup seeds the latch and produces no motion.
func (l *Latch) CursorMoved(x, y float64) {
	if !l.seeded {
		l.lastX, l.lastY = x, y
		l.seeded = true
		return
	}

	dx := x - l.lastX
	dy := y - l.lastY

	if l.held[Rotate] {
		if l.held[Zoom] {
			switch {
			case dy > 0:
				l.zoomSteps++
			case dy < 0:
				l.zoomSteps--
			}
		}
		l.dragX += dx
		l.dragY += dy
	}

	l.lastX, l.lastY = x, y
}

// ConsumeDrag returns the drag motion accumulated since the last call and
// resets it.
func (l *Latch) ConsumeDrag() (dx, dy float64) {
	dx, dy = l.dragX, l.dragY
	l.dragX, l.dragY = 0, 0
	return dx, dy
}

// ConsumeZoom returns the net zoom steps since the last call and resets them.
// Positive values zoom in.
func (l *Latch) ConsumeZoom() int {
	n := l.zoomSteps
	l.zoomSteps = 0
	return n
}

// Release clears every held action. Used when the window loses focus.
func (l *Latch) Release() {
	for i := range l.held {
		l.held[i] = false
	}
}
