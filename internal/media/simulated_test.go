package media_test

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"clipgrid/internal/catalog"
	"clipgrid/internal/media"
)

func testTile(id string) catalog.Tile {
	return catalog.Tile{
		ID:        id,
		Name:      id,
		SourceURL: "https://cdn.example/" + id + ".mp4",
	}
}

func waitForFirstFrame(t *testing.T, fired *atomic.Bool) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for first frame")
		default:
		}
		if fired.Load() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAttachDeliversFirstFrame(t *testing.T) {
	loader := media.NewSimulatedLoader(10*time.Millisecond, 320)

	var fired atomic.Bool
	var delivered atomic.Pointer[media.SimulatedResource]
	res, err := loader.Attach(context.Background(), testTile("tile-1"), func(r media.Resource) {
		delivered.Store(r.(*media.SimulatedResource))
		fired.Store(true)
	})
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer res.Close()

	waitForFirstFrame(t, &fired)

	if delivered.Load() != res.(*media.SimulatedResource) {
		t.Fatal("first frame delivered for a different resource")
	}
	if res.TileID() != "tile-1" {
		t.Fatalf("unexpected tile id %q", res.TileID())
	}
	if loader.LiveCount() != 1 {
		t.Fatalf("expected one live resource, got %d", loader.LiveCount())
	}
}

func TestAttachHonorsFailLoadScript(t *testing.T) {
	loader := media.NewSimulatedLoader(time.Millisecond, 320)
	loader.SetScript("tile-1", media.Script{FailLoad: true})

	_, err := loader.Attach(context.Background(), testTile("tile-1"), nil)
	if !errors.Is(err, media.ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed, got %v", err)
	}
	if loader.LiveCount() != 0 {
		t.Fatalf("expected no live resources, got %d", loader.LiveCount())
	}
	if loader.AttachCount("tile-1") != 1 {
		t.Fatalf("expected failed attach to count, got %d", loader.AttachCount("tile-1"))
	}
}

func TestCloseSuppressesPendingFirstFrame(t *testing.T) {
	loader := media.NewSimulatedLoader(80*time.Millisecond, 320)

	var fired atomic.Bool
	res, err := loader.Attach(context.Background(), testTile("tile-1"), func(media.Resource) {
		fired.Store(true)
	})
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if err := res.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	time.Sleep(160 * time.Millisecond)
	if fired.Load() {
		t.Fatal("first frame fired after close")
	}
	if loader.LiveCount() != 0 {
		t.Fatalf("expected no live resources, got %d", loader.LiveCount())
	}
}

func TestPlayRejectedByScript(t *testing.T) {
	loader := media.NewSimulatedLoader(time.Millisecond, 320)
	loader.SetScript("tile-1", media.Script{RejectPlay: true})

	res, err := loader.Attach(context.Background(), testTile("tile-1"), nil)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer res.Close()

	if err := res.Play(); !errors.Is(err, media.ErrPlaybackRejected) {
		t.Fatalf("expected ErrPlaybackRejected, got %v", err)
	}
	if res.(*media.SimulatedResource).Playing() {
		t.Fatal("rejected play must not mark resource playing")
	}
}

func TestCaptureFrameProducesPoster(t *testing.T) {
	loader := media.NewSimulatedLoader(time.Millisecond, 320)

	res, err := loader.Attach(context.Background(), testTile("tile-1"), nil)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer res.Close()

	snap, err := res.CaptureFrame()
	if err != nil {
		t.Fatalf("CaptureFrame failed: %v", err)
	}
	if snap.Format != "jpeg" {
		t.Fatalf("expected jpeg snapshot, got %q", snap.Format)
	}
	if len(snap.Data) == 0 {
		t.Fatal("expected encoded poster bytes")
	}
	if snap.Width > 320 || snap.Height > 320 {
		t.Fatalf("poster exceeds max dimension: %dx%d", snap.Width, snap.Height)
	}

	again, err := res.CaptureFrame()
	if err != nil {
		t.Fatalf("second CaptureFrame failed: %v", err)
	}
	if !bytes.Equal(snap.Data, again.Data) {
		t.Fatal("expected deterministic capture for one tile")
	}
}

func TestCaptureDeniedByScript(t *testing.T) {
	loader := media.NewSimulatedLoader(time.Millisecond, 320)
	loader.SetScript("tile-1", media.Script{DenyCapture: true})

	res, err := loader.Attach(context.Background(), testTile("tile-1"), nil)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer res.Close()

	if _, err := res.CaptureFrame(); !errors.Is(err, media.ErrCaptureDenied) {
		t.Fatalf("expected ErrCaptureDenied, got %v", err)
	}
}

func TestResourcesStartMuted(t *testing.T) {
	loader := media.NewSimulatedLoader(time.Millisecond, 320)

	res, err := loader.Attach(context.Background(), testTile("tile-1"), nil)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer res.Close()

	sim := res.(*media.SimulatedResource)
	if !sim.Muted() {
		t.Fatal("expected resources to start muted")
	}
	if err := res.SetMuted(false); err != nil {
		t.Fatalf("SetMuted failed: %v", err)
	}
	if sim.Muted() {
		t.Fatal("expected unmuted resource")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	loader := media.NewSimulatedLoader(time.Millisecond, 320)

	res, err := loader.Attach(context.Background(), testTile("tile-1"), nil)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if err := res.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := res.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if loader.LiveCount() != 0 {
		t.Fatalf("expected live count 0 after double close, got %d", loader.LiveCount())
	}

	if err := res.Play(); !errors.Is(err, media.ErrResourceClosed) {
		t.Fatalf("expected ErrResourceClosed from Play, got %v", err)
	}
	if _, err := res.CaptureFrame(); !errors.Is(err, media.ErrResourceClosed) {
		t.Fatalf("expected ErrResourceClosed from CaptureFrame, got %v", err)
	}
	if err := res.SetMuted(false); !errors.Is(err, media.ErrResourceClosed) {
		t.Fatalf("expected ErrResourceClosed from SetMuted, got %v", err)
	}
}

func TestAttachRespectsContext(t *testing.T) {
	loader := media.NewSimulatedLoader(time.Millisecond, 320)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := loader.Attach(ctx, testTile("tile-1"), nil); err == nil {
		t.Fatal("expected canceled context to fail attach")
	}
}
