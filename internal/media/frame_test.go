package media

import (
	"image"
	"testing"
)

func TestEncodePosterFitsWithinMaxDim(t *testing.T) {
	frame := image.NewNRGBA(image.Rect(0, 0, 640, 360))

	snap, err := EncodePoster(frame, 320)
	if err != nil {
		t.Fatalf("EncodePoster failed: %v", err)
	}
	if snap.Width != 320 {
		t.Fatalf("expected width scaled to 320, got %d", snap.Width)
	}
	if snap.Height != 180 {
		t.Fatalf("expected height scaled to 180, got %d", snap.Height)
	}
	if snap.Format != "jpeg" || len(snap.Data) == 0 {
		t.Fatalf("unexpected snapshot: format=%q bytes=%d", snap.Format, len(snap.Data))
	}
	if snap.CapturedAt.IsZero() {
		t.Fatal("expected capture timestamp")
	}
}

func TestEncodePosterKeepsSmallFrames(t *testing.T) {
	frame := image.NewNRGBA(image.Rect(0, 0, 160, 90))

	snap, err := EncodePoster(frame, 320)
	if err != nil {
		t.Fatalf("EncodePoster failed: %v", err)
	}
	if snap.Width != 160 || snap.Height != 90 {
		t.Fatalf("expected small frame kept at 160x90, got %dx%d", snap.Width, snap.Height)
	}
}

func TestEncodePosterRejectsBadInput(t *testing.T) {
	if _, err := EncodePoster(nil, 320); err == nil {
		t.Fatal("expected error for nil frame")
	}
	if _, err := EncodePoster(image.NewNRGBA(image.Rect(0, 0, 10, 10)), 0); err == nil {
		t.Fatal("expected error for non-positive max dimension")
	}
}

func TestSynthesizeFrameIsDeterministic(t *testing.T) {
	a := synthesizeFrame("tile-1")
	b := synthesizeFrame("tile-1")
	c := synthesizeFrame("tile-2")

	if a.Bounds() != b.Bounds() {
		t.Fatal("expected stable frame dimensions")
	}
	ax, ay := a.Bounds().Min.X, a.Bounds().Min.Y
	if a.At(ax, ay) != b.At(ax, ay) {
		t.Fatal("expected identical fill for one tile")
	}
	if a.At(ax, ay) == c.At(ax, ay) {
		t.Fatal("expected different tiles to produce different fills")
	}
}
