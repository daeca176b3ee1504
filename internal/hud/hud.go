// Package hud draws joystick feedback rings and live stick positions
// onto camera frames for the MJPEG operator view.
package hud

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/joystick"
)

var (
	ringColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	deadzoneColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	stickColor    = color.RGBA{R: 0, G: 220, B: 120, A: 255}
	idleColor     = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// OriginPoint returns the pixel position of the joystick origin for a
// frame of the given dimensions.
func OriginPoint(cfg joystick.Config, width, height int) image.Point {
	return image.Point{
		X: int(cfg.OriginX * float64(width)),
		Y: int(cfg.OriginY * float64(height)),
	}
}

// RadiusPx returns the capture radius in pixels. The radius is
// configured in x-units, matching the aspect correction applied by the
// normalizer, so both axes scale by the frame width.
func RadiusPx(cfg joystick.Config, width int) int {
	return int(cfg.Radius * float64(width))
}

// StickPoint returns the pixel position of the live stick marker.
// The signal's X axis is mirrored for the operator, so it is flipped
// back before projecting into raw frame coordinates.
func StickPoint(cfg joystick.Config, sig joystick.Signal, width, height int) image.Point {
	origin := OriginPoint(cfg, width, height)
	r := cfg.Radius * float64(width)
	return image.Point{
		X: origin.X - int(sig.X*r),
		Y: origin.Y + int(sig.Y*r),
	}
}

// Draw renders one joystick onto the frame: the outer capture ring,
// the deadzone ring and the current stick position with a line from
// the origin.
func Draw(mat *gocv.Mat, cfg joystick.Config, sig joystick.Signal) {
	if mat == nil || mat.Empty() {
		return
	}

	width := mat.Cols()
	height := mat.Rows()

	origin := OriginPoint(cfg, width, height)
	outer := RadiusPx(cfg, width)
	inner := int(cfg.Deadzone * cfg.Radius * float64(width))

	gocv.Circle(mat, origin, outer, ringColor, 2)
	if inner > 0 {
		gocv.Circle(mat, origin, inner, deadzoneColor, 1)
	}

	stick := StickPoint(cfg, sig, width, height)
	col := stickColor
	if sig.Zero() {
		col = idleColor
	}
	gocv.Line(mat, origin, stick, col, 1)
	gocv.Circle(mat, stick, 6, col, -1)
}
