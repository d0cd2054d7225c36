package pixelcafe

// ScaleMode selects how the integer display scale is resolved.
type ScaleMode string

const (
	ScaleFixed ScaleMode = "fixed" // always use ScaleConfig.Fixed
	ScaleAuto  ScaleMode = "auto"  // largest integer scale fitting the display bounds
	ScaleNone  ScaleMode = "none"  // no enlargement
)

// maxAutoScale bounds the auto scale search.
const maxAutoScale = 8

// ScaleConfig is the display scaling policy.
type ScaleConfig struct {
	Mode             ScaleMode `yaml:"mode" env:"MODE" validate:"oneof=fixed auto none"`
	Fixed            int       `yaml:"fixed" env:"FIXED" validate:"min=1"`
	MaxDisplayWidth  int       `yaml:"max_display_width" env:"MAX_DISPLAY_WIDTH" validate:"min=1"`
	MaxDisplayHeight int       `yaml:"max_display_height" env:"MAX_DISPLAY_HEIGHT" validate:"min=1"`
}

// ResolveScale evaluates the policy for a logical canvas of w×h. It never
// returns less than 1.
func ResolveScale(cfg ScaleConfig, w, h int) int {
	switch cfg.Mode {
	case ScaleNone:
		return 1
	case ScaleFixed:
		return max(1, cfg.Fixed)
	case ScaleAuto:
		for s := maxAutoScale; s >= 1; s-- {
			if w*s <= cfg.MaxDisplayWidth && h*s <= cfg.MaxDisplayHeight {
				return s
			}
		}
		return 1
	default:
		return 1
	}
}

// LogicalSize returns the canvas size all scenes are normalized into: the
// largest width and height among the valid sequences, or the defaults when
// none loaded.
func LogicalSize(defaultW, defaultH int, seqs ...*Sequence) (w, h int) {
	for _, s := range seqs {
		if !s.Valid() {
			continue
		}
		w = max(w, s.Width())
		h = max(h, s.Height())
	}
	if w == 0 || h == 0 {
		return defaultW, defaultH
	}
	return w, h
}

// CoordinateMapper converts between device pixels and logical canvas pixels.
// The scale is fixed for the session.
type CoordinateMapper struct {
	logicalW, logicalH int
	scale              int
}

// NewCoordinateMapper creates a mapper for a w×h canvas shown at scale.
// Scales below 1 are treated as 1.
func NewCoordinateMapper(w, h, scale int) CoordinateMapper {
	return CoordinateMapper{logicalW: w, logicalH: h, scale: max(1, scale)}
}

// Scale returns the integer display scale.
func (m CoordinateMapper) Scale() int { return m.scale }

// LogicalSize returns the canvas size.
func (m CoordinateMapper) LogicalSize() (int, int) { return m.logicalW, m.logicalH }

// DisplaySize returns the canvas size in device pixels.
func (m CoordinateMapper) DisplaySize() (int, int) {
	return m.logicalW * m.scale, m.logicalH * m.scale
}

// DeviceToLogical integer-divides device coordinates by the scale, flooring
// toward negative infinity so positions left of or above the surface stay
// outside the canvas. Every hit test goes through here.
func (m CoordinateMapper) DeviceToLogical(dx, dy int) (lx, ly int) {
	return floorDiv(dx, m.scale), floorDiv(dy, m.scale)
}

// LogicalToDevice returns the device position of the top-left corner of a
// logical pixel.
func (m CoordinateMapper) LogicalToDevice(lx, ly int) (dx, dy int) {
	return lx * m.scale, ly * m.scale
}

// CursorAnchor returns where the overlay cursor is drawn in device pixels.
// A cursor locked to the screen follows raw device pixels; otherwise it snaps
// to the logical grid. This is presentation only; hit-testing never uses it.
func (m CoordinateMapper) CursorAnchor(dx, dy int, cfg CursorConfig) (int, int) {
	if cfg.LockToScreen {
		return dx + cfg.Offset.X, dy + cfg.Offset.Y
	}
	lx, ly := m.DeviceToLogical(dx, dy)
	return (lx + cfg.Offset.X) * m.scale, (ly + cfg.Offset.Y) * m.scale
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
