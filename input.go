package pixelcafe

import (
	"log/slog"
	"slices"
)

// PointerKind distinguishes pointer events.
type PointerKind uint8

const (
	PointerMove PointerKind = iota
	PointerPress
	PointerRelease
)

// PointerEvent is a raw pointer event in device pixels.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// Key is a keyboard key the router understands.
type Key uint8

const (
	KeyEscape Key = iota
	KeyEnter
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyEnter:
		return "enter"
	default:
		return "unknown"
	}
}

// ClickContext describes a completed click.
type ClickContext struct {
	Device  Point
	Logical Point
	State   SceneState
	// Hotspot is set for hotspot callbacks.
	Hotspot string
}

// --- Handler registry ---

type handlerKind uint8

const (
	handlerClick handlerKind = iota
	handlerKey
	handlerHotspot
)

type clickHandler struct {
	id  uint32
	box *Hitbox // nil matches everywhere
	fn  func(ClickContext)
}

type keyHandler struct {
	id  uint32
	key Key
	fn  func(Key)
}

type hotspot struct {
	id     uint32
	name   string
	box    Hitbox
	states []SceneState
	fn     func(ClickContext)
}

func (h hotspot) liveIn(s SceneState) bool {
	return slices.Contains(h.states, s)
}

type handlerRegistry struct {
	click    []clickHandler
	key      []keyHandler
	hotspots []hotspot
	nextID   uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind handlerKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case handlerClick:
		h.reg.click = slices.DeleteFunc(h.reg.click, func(c clickHandler) bool { return c.id == h.id })
	case handlerKey:
		h.reg.key = slices.DeleteFunc(h.reg.key, func(k keyHandler) bool { return k.id == h.id })
	case handlerHotspot:
		h.reg.hotspots = slices.DeleteFunc(h.reg.hotspots, func(s hotspot) bool { return s.id == h.id })
	}
}

// --- Router ---

// InputRouter maps device input to logical coordinates and dispatches it to
// the state machine and registered collaborators. Every hit test goes
// through the CoordinateMapper.
type InputRouter struct {
	mapper  CoordinateMapper
	machine *StateMachine
	cfg     InputConfig
	log     *slog.Logger

	device  Point
	logical Point
	down    bool
	seen    bool

	handlers    handlerRegistry
	defaults    []CallbackHandle
	injectQueue []syntheticEvent
}

// NewInputRouter creates a router with the default routing installed:
// clicking the outside scene starts the fade, Escape leaves the focused
// scene and Enter starts the focus transition. The book and calendar
// hotspots are registered as live in the focused scene.
func NewInputRouter(mapper CoordinateMapper, machine *StateMachine, cfg InputConfig, logger *slog.Logger) *InputRouter {
	if logger == nil {
		logger = slog.Default()
	}
	r := &InputRouter{
		mapper:  mapper,
		machine: machine,
		cfg:     cfg,
		log:     logger.With("component", "input"),
	}
	r.installDefaults()
	return r
}

func (r *InputRouter) installDefaults() {
	r.defaults = append(r.defaults,
		r.OnClick(nil, func(c ClickContext) {
			if c.State != StateOutside {
				return
			}
			if r.cfg.ClickAnywhereOutside || r.cfg.Door.Contains(c.Logical.X, c.Logical.Y) {
				r.machine.TriggerFade()
			}
		}),
		r.OnKey(KeyEscape, func(Key) { r.machine.Escape() }),
		r.OnKey(KeyEnter, func(Key) { r.machine.TriggerFocus() }),
	)
	focused := []SceneState{StateFocused}
	logHit := func(c ClickContext) {
		r.log.Info("hotspot clicked", "hotspot", c.Hotspot, "x", c.Logical.X, "y", c.Logical.Y)
	}
	r.defaults = append(r.defaults,
		r.OnHotspot("book", r.cfg.BookBox(), focused, logHit),
		r.OnHotspot("calendar", r.cfg.CalendarBox(), focused, logHit),
	)
}

// ClearDefaults removes the default routing so a collaborator can take over.
func (r *InputRouter) ClearDefaults() {
	for _, h := range r.defaults {
		h.Remove()
	}
	r.defaults = nil
}

// OnClick registers a callback for clicks inside box. A nil box matches
// every click.
func (r *InputRouter) OnClick(box *Hitbox, fn func(ClickContext)) CallbackHandle {
	r.handlers.nextID++
	id := r.handlers.nextID
	r.handlers.click = append(r.handlers.click, clickHandler{id: id, box: box, fn: fn})
	return CallbackHandle{id: id, reg: &r.handlers, kind: handlerClick}
}

// OnKey registers a callback for key presses of k.
func (r *InputRouter) OnKey(k Key, fn func(Key)) CallbackHandle {
	r.handlers.nextID++
	id := r.handlers.nextID
	r.handlers.key = append(r.handlers.key, keyHandler{id: id, key: k, fn: fn})
	return CallbackHandle{id: id, reg: &r.handlers, kind: handlerKey}
}

// OnHotspot registers a named hotspot that is live only in states. Live
// hotspots report hover and receive clicks inside box.
func (r *InputRouter) OnHotspot(name string, box Hitbox, states []SceneState, fn func(ClickContext)) CallbackHandle {
	r.handlers.nextID++
	id := r.handlers.nextID
	r.handlers.hotspots = append(r.handlers.hotspots, hotspot{
		id: id, name: name, box: box, states: slices.Clone(states), fn: fn,
	})
	return CallbackHandle{id: id, reg: &r.handlers, kind: handlerHotspot}
}

// Pointer handles one device pointer event. A click is a press followed by
// a release; it is dispatched at the release position.
func (r *InputRouter) Pointer(ev PointerEvent) {
	r.device = Point{ev.X, ev.Y}
	lx, ly := r.mapper.DeviceToLogical(ev.X, ev.Y)
	r.logical = Point{lx, ly}
	r.seen = true

	switch ev.Kind {
	case PointerPress:
		r.down = true
	case PointerRelease:
		if !r.down {
			return
		}
		r.down = false
		r.dispatchClick()
	}
}

// Key handles one key press.
func (r *InputRouter) Key(k Key) {
	r.log.Debug("key", "key", k, "state", r.machine.State())
	for _, h := range slices.Clone(r.handlers.key) {
		if h.key == k {
			h.fn(k)
		}
	}
}

func (r *InputRouter) dispatchClick() {
	state := r.machine.State()
	ctx := ClickContext{Device: r.device, Logical: r.logical, State: state}
	r.log.Debug("click", "x", r.logical.X, "y", r.logical.Y, "state", state)

	// Snapshot so handlers may register or remove callbacks.
	for _, h := range slices.Clone(r.handlers.click) {
		if h.box == nil || h.box.Contains(r.logical.X, r.logical.Y) {
			h.fn(ctx)
		}
	}
	for _, h := range slices.Clone(r.handlers.hotspots) {
		if h.liveIn(state) && h.box.Contains(r.logical.X, r.logical.Y) {
			hc := ctx
			hc.Hotspot = h.name
			h.fn(hc)
		}
	}
}

// Hovered returns the name of the live hotspot under the pointer, or "".
func (r *InputRouter) Hovered() string {
	if !r.seen {
		return ""
	}
	state := r.machine.State()
	for _, h := range r.handlers.hotspots {
		if h.liveIn(state) && h.box.Contains(r.logical.X, r.logical.Y) {
			return h.name
		}
	}
	return ""
}

// HoveredBox returns the box of the hovered hotspot.
func (r *InputRouter) HoveredBox() (Hitbox, bool) {
	name := r.Hovered()
	if name == "" {
		return Hitbox{}, false
	}
	for _, h := range r.handlers.hotspots {
		if h.name == name {
			return h.box, true
		}
	}
	return Hitbox{}, false
}

// LiveHotspots returns the boxes of the hotspots live in the current state.
func (r *InputRouter) LiveHotspots() []Hitbox {
	state := r.machine.State()
	var out []Hitbox
	for _, h := range r.handlers.hotspots {
		if h.liveIn(state) {
			out = append(out, h.box)
		}
	}
	return out
}

// Logical returns the last pointer position in logical pixels.
func (r *InputRouter) Logical() Point { return r.logical }

// Device returns the last pointer position in device pixels.
func (r *InputRouter) Device() Point { return r.device }

// Mapper returns the coordinate mapper used for hit testing.
func (r *InputRouter) Mapper() CoordinateMapper { return r.mapper }
