package display

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/phanxgames/pixelcafe"
)

// Overlay colours.
var (
	hoverColor     = color.RGBA{255, 170, 68, 255}
	hitboxColor    = color.RGBA{0, 255, 128, 160}
	hintShade      = color.RGBA{0, 0, 0, 160}
	crosshairColor = color.RGBA{255, 255, 255, 220}
)

// debugLineHeight is the line advance of ebitenutil.DebugPrint.
const debugLineHeight = 16

// rectF is a device-pixel rectangle ready for vector drawing.
type rectF struct {
	X, Y, W, H float32
}

// boxToDevice converts an inclusive logical hitbox to the device rectangle
// covering all of its pixels.
func boxToDevice(m pixelcafe.CoordinateMapper, b pixelcafe.Hitbox) rectF {
	x1, y1 := m.LogicalToDevice(b.X1, b.Y1)
	x2, y2 := m.LogicalToDevice(b.X2+1, b.Y2+1)
	return rectF{X: float32(x1), Y: float32(y1), W: float32(x2 - x1), H: float32(y2 - y1)}
}

// hintLines returns the "add <file>" prompts shown for scenes drawn from
// placeholders.
func hintLines(missing []pixelcafe.MissingAsset) []string {
	lines := make([]string, 0, len(missing))
	for _, m := range missing {
		name := filepath.Base(m.Path)
		if m.Path == "" {
			name = m.Scene + ".gif"
		}
		lines = append(lines, fmt.Sprintf("%s scene: add %s", m.Scene, name))
	}
	return lines
}

// hintsFor filters hints to the scenes visible in state.
func hintsFor(state pixelcafe.SceneState, missing []pixelcafe.MissingAsset) []pixelcafe.MissingAsset {
	var out []pixelcafe.MissingAsset
	for _, m := range missing {
		if sceneVisible(m.Scene, state) {
			out = append(out, m)
		}
	}
	return out
}

func sceneVisible(scene string, state pixelcafe.SceneState) bool {
	switch scene {
	case "outside":
		return state == pixelcafe.StateOutside || state == pixelcafe.StateFading
	case "inside":
		return state != pixelcafe.StateOutside && state != pixelcafe.StateFocused
	case "focused":
		return state == pixelcafe.StateFadingToFocused || state == pixelcafe.StateTearing || state == pixelcafe.StateFocused
	default:
		return false
	}
}

// cursorScale shrinks a w×h cursor sprite so its longer side fits autoMax
// device pixels. Sprites already small enough, or autoMax 0, keep scale 1.
func cursorScale(w, h, autoMax int) float64 {
	longest := max(w, h)
	if autoMax <= 0 || longest <= autoMax || longest == 0 {
		return 1
	}
	return float64(autoMax) / float64(longest)
}

// coordText is the pointer readout drawn in the top-left corner.
func coordText(logical pixelcafe.Point, state pixelcafe.SceneState) string {
	return fmt.Sprintf("%d,%d %s", logical.X, logical.Y, state)
}
