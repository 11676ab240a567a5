package media

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/jpeg"
	"time"

	"github.com/disintegration/imaging"

	"clipgrid/internal/poster"
)

const (
	simFrameWidth  = 640
	simFrameHeight = 360

	posterQuality = 80
)

// EncodePoster downscales the frame to fit within maxDim on the long side
// and encodes it as JPEG. Frames already smaller than maxDim keep their
// size.
func EncodePoster(frame image.Image, maxDim int) (poster.Snapshot, error) {
	if frame == nil {
		return poster.Snapshot{}, fmt.Errorf("encode poster: nil frame")
	}
	if maxDim <= 0 {
		return poster.Snapshot{}, fmt.Errorf("encode poster: max dimension %d", maxDim)
	}

	fitted := imaging.Fit(frame, maxDim, maxDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, fitted, &jpeg.Options{Quality: posterQuality}); err != nil {
		return poster.Snapshot{}, fmt.Errorf("encode poster: %w", err)
	}

	bounds := fitted.Bounds()
	return poster.Snapshot{
		Data:       buf.Bytes(),
		Format:     "jpeg",
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		CapturedAt: time.Now(),
	}, nil
}

// synthesizeFrame renders a solid frame whose color is derived from the
// tile ID, so fake captures stay deterministic per tile.
func synthesizeFrame(tileID string) image.Image {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tileID))
	sum := h.Sum32()
	fill := color.NRGBA{
		R: uint8(sum),
		G: uint8(sum >> 8),
		B: uint8(sum >> 16),
		A: 255,
	}
	return imaging.New(simFrameWidth, simFrameHeight, fill)
}
