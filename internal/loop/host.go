package loop

// Display receives one full frame of text per tick.
// Remove is called once, after the dwell, to take the widget off screen.
type Display interface {
	Show(text string)
	Remove()
}

// InputSource delivers flap events into the queue it is attached to.
// Detach must stop all further Requests on that queue.
type InputSource interface {
	Attach(q *FlapQueue)
	Detach()
}

// UIToggle is a host control disabled while a widget runs.
type UIToggle interface {
	SetEnabled(enabled bool)
}

// Host bundles the collaborators a controller drives.
// Display and Input are required, Toggle is optional.
type Host struct {
	Display Display
	Input   InputSource
	Toggle  UIToggle
}
