package pixelcafe

// syntheticEvent is a single injected input event. Pointer coordinates are
// device pixels, identical to real input.
type syntheticEvent struct {
	pointer *PointerEvent
	key     *Key
}

// InjectPress queues a pointer press at device coordinates (x, y). Queued
// events are consumed one per tick.
func (r *InputRouter) InjectPress(x, y int) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{pointer: &PointerEvent{Kind: PointerPress, X: x, Y: y}})
}

// InjectRelease queues a pointer release at device coordinates (x, y).
func (r *InputRouter) InjectRelease(x, y int) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{pointer: &PointerEvent{Kind: PointerRelease, X: x, Y: y}})
}

// InjectMove queues a pointer move to device coordinates (x, y).
func (r *InputRouter) InjectMove(x, y int) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{pointer: &PointerEvent{Kind: PointerMove, X: x, Y: y}})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same device coordinates. Consumes two ticks.
func (r *InputRouter) InjectClick(x, y int) {
	r.InjectPress(x, y)
	r.InjectRelease(x, y)
}

// InjectKey queues a key press.
func (r *InputRouter) InjectKey(k Key) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{key: &k})
}

// Pending returns the number of queued synthetic events.
func (r *InputRouter) Pending() int { return len(r.injectQueue) }

// ProcessInjected pops one queued event and routes it. Returns true if an
// event was consumed, in which case real input for the tick should be
// skipped.
func (r *InputRouter) ProcessInjected() bool {
	if len(r.injectQueue) == 0 {
		return false
	}
	evt := r.injectQueue[0]
	copy(r.injectQueue, r.injectQueue[1:])
	r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]

	switch {
	case evt.pointer != nil:
		r.Pointer(*evt.pointer)
	case evt.key != nil:
		r.Key(*evt.key)
	}
	return true
}
