package tile_test

import (
	"testing"
	"time"

	"clipgrid/internal/audiofocus"
	"clipgrid/internal/catalog"
	"clipgrid/internal/logging"
	"clipgrid/internal/media"
	"clipgrid/internal/poster"
	"clipgrid/internal/tile"
)

const (
	testDebounce  = 50 * time.Millisecond
	testLoadDelay = 5 * time.Millisecond
)

func testTile(id string) catalog.Tile {
	return catalog.Tile{
		ID:        id,
		Name:      id,
		SourceURL: "https://cdn.example/" + id + ".mp4",
	}
}

func newHarness(t *testing.T) (*media.SimulatedLoader, *poster.Cache, *audiofocus.Coordinator) {
	t.Helper()
	return media.NewSimulatedLoader(testLoadDelay, 320), poster.NewCache(), audiofocus.NewCoordinator()
}

func newController(loader *media.SimulatedLoader, posters *poster.Cache, focus *audiofocus.Coordinator, id string, opts tile.Options) *tile.Controller {
	if opts.Debounce == 0 {
		opts.Debounce = testDebounce
	}
	return tile.NewController(testTile(id), loader, posters, focus, logging.NewNop(), opts)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
		default:
		}
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNearMountsTile(t *testing.T) {
	loader, posters, focus := newHarness(t)
	ctrl := newController(loader, posters, focus, "tile-1", tile.Options{})
	defer ctrl.Destroy()

	if ctrl.State() != tile.StateUnmounted {
		t.Fatalf("expected initial unmounted state, got %s", ctrl.State())
	}

	ctrl.HandleProximity(true)
	if ctrl.State() != tile.StateMounted {
		t.Fatalf("expected mounted after near, got %s", ctrl.State())
	}
	if loader.LiveCount() != 1 {
		t.Fatalf("expected one live resource, got %d", loader.LiveCount())
	}
	if view := ctrl.View(); view.Kind != tile.ViewLive {
		t.Fatalf("expected live view, got %s", view.Kind)
	}

	// Repeated near transitions must not attach again.
	ctrl.HandleProximity(true)
	if loader.AttachCount("tile-1") != 1 {
		t.Fatalf("expected a single attach, got %d", loader.AttachCount("tile-1"))
	}
}

func TestEagerStartsMounted(t *testing.T) {
	loader, posters, focus := newHarness(t)
	ctrl := newController(loader, posters, focus, "tile-1", tile.Options{Eager: true})
	defer ctrl.Destroy()

	if ctrl.State() != tile.StateMounted {
		t.Fatalf("expected eager controller to start mounted, got %s", ctrl.State())
	}
	if loader.LiveCount() != 1 {
		t.Fatalf("expected one live resource, got %d", loader.LiveCount())
	}
}

func TestDebounceCancelKeepsResource(t *testing.T) {
	loader, posters, focus := newHarness(t)
	ctrl := newController(loader, posters, focus, "tile-1", tile.Options{})
	defer ctrl.Destroy()

	ctrl.HandleProximity(true)
	ctrl.HandleProximity(false)
	if ctrl.State() != tile.StateReleasing {
		t.Fatalf("expected releasing after far, got %s", ctrl.State())
	}

	ctrl.HandleProximity(true)
	if ctrl.State() != tile.StateMounted {
		t.Fatalf("expected mounted after re-entry, got %s", ctrl.State())
	}

	// Even after the original window elapses the canceled release must not
	// detach the resource.
	time.Sleep(testDebounce * 3)
	if ctrl.State() != tile.StateMounted {
		t.Fatalf("canceled release fired anyway, state %s", ctrl.State())
	}
	if loader.LiveCount() != 1 {
		t.Fatalf("expected resource kept, live=%d", loader.LiveCount())
	}
	if loader.AttachCount("tile-1") != 1 {
		t.Fatalf("expected no resource churn, attaches=%d", loader.AttachCount("tile-1"))
	}
}

func TestDebounceCompletionReleasesOnce(t *testing.T) {
	loader, posters, focus := newHarness(t)
	ctrl := newController(loader, posters, focus, "tile-1", tile.Options{})
	defer ctrl.Destroy()

	ctrl.HandleProximity(true)
	farAt := time.Now()
	ctrl.HandleProximity(false)

	// The resource must survive until the window elapses.
	if loader.LiveCount() != 1 {
		t.Fatal("resource detached before the debounce window")
	}

	waitFor(t, "release completion", func() bool {
		return ctrl.State() == tile.StateUnmounted
	})
	if elapsed := time.Since(farAt); elapsed < testDebounce {
		t.Fatalf("release completed before the window: %v", elapsed)
	}
	if loader.LiveCount() != 0 {
		t.Fatalf("expected zero live resources after release, got %d", loader.LiveCount())
	}

	// A later far transition must not detach anything else.
	ctrl.HandleProximity(false)
	time.Sleep(testDebounce * 2)
	if loader.AttachCount("tile-1") != 1 {
		t.Fatalf("unexpected attach churn: %d", loader.AttachCount("tile-1"))
	}
}

func TestRemountAfterReleaseAttachesAgain(t *testing.T) {
	loader, posters, focus := newHarness(t)
	ctrl := newController(loader, posters, focus, "tile-1", tile.Options{})
	defer ctrl.Destroy()

	ctrl.HandleProximity(true)
	ctrl.HandleProximity(false)
	waitFor(t, "release completion", func() bool {
		return ctrl.State() == tile.StateUnmounted
	})

	ctrl.HandleProximity(true)
	if ctrl.State() != tile.StateMounted {
		t.Fatalf("expected remount, got %s", ctrl.State())
	}
	if loader.AttachCount("tile-1") != 2 {
		t.Fatalf("expected second attach, got %d", loader.AttachCount("tile-1"))
	}
}

func TestFirstFrameCapturesPosterOnce(t *testing.T) {
	loader, posters, focus := newHarness(t)
	ctrl := newController(loader, posters, focus, "tile-1", tile.Options{})
	defer ctrl.Destroy()

	ctrl.HandleProximity(true)
	waitFor(t, "poster capture", func() bool {
		_, ok := posters.Get("tile-1")
		return ok
	})

	first, _ := posters.Get("tile-1")

	// Release and remount; the second first-frame event must not replace
	// the cached snapshot.
	ctrl.HandleProximity(false)
	waitFor(t, "release completion", func() bool {
		return ctrl.State() == tile.StateUnmounted
	})
	ctrl.HandleProximity(true)
	time.Sleep(testLoadDelay * 4)

	if posters.Len() != 1 {
		t.Fatalf("expected one cached poster, got %d", posters.Len())
	}
	again, _ := posters.Get("tile-1")
	if !first.CapturedAt.Equal(again.CapturedAt) {
		t.Fatal("expected cached snapshot to be retained, not recaptured")
	}
}

func TestLoadFailureAbsorbedAndRetriedOnRemount(t *testing.T) {
	loader, posters, focus := newHarness(t)
	loader.SetScript("tile-1", media.Script{FailLoad: true})
	ctrl := newController(loader, posters, focus, "tile-1", tile.Options{})
	defer ctrl.Destroy()

	ctrl.HandleProximity(true)
	if ctrl.State() != tile.StateMounted {
		t.Fatalf("expected mounted despite load failure, got %s", ctrl.State())
	}
	if loader.LiveCount() != 0 {
		t.Fatalf("expected no live resource after failed attach, got %d", loader.LiveCount())
	}
	if view := ctrl.View(); view.Kind != tile.ViewBlank {
		t.Fatalf("expected blank fallback, got %s", view.Kind)
	}

	// The failed tile releases normally and retries on the next mount.
	loader.SetScript("tile-1", media.Script{})
	ctrl.HandleProximity(false)
	waitFor(t, "release completion", func() bool {
		return ctrl.State() == tile.StateUnmounted
	})
	ctrl.HandleProximity(true)
	if loader.LiveCount() != 1 {
		t.Fatalf("expected retry attach to produce a live resource, got %d", loader.LiveCount())
	}
	if loader.AttachCount("tile-1") != 2 {
		t.Fatalf("expected exactly two attach attempts, got %d", loader.AttachCount("tile-1"))
	}
}

func TestPlaybackRejectionAbsorbed(t *testing.T) {
	loader, posters, focus := newHarness(t)
	loader.SetScript("tile-1", media.Script{RejectPlay: true})
	ctrl := newController(loader, posters, focus, "tile-1", tile.Options{})
	defer ctrl.Destroy()

	ctrl.HandleProximity(true)
	if ctrl.State() != tile.StateMounted {
		t.Fatalf("expected mounted despite rejected playback, got %s", ctrl.State())
	}
	if loader.LiveCount() != 1 {
		t.Fatalf("expected resource kept, got %d live", loader.LiveCount())
	}
	if view := ctrl.View(); view.Kind != tile.ViewLive {
		t.Fatalf("expected live view for paused tile, got %s", view.Kind)
	}
}

func TestCaptureDenialLeavesNoPoster(t *testing.T) {
	loader, posters, focus := newHarness(t)
	loader.SetScript("tile-1", media.Script{DenyCapture: true})
	ctrl := newController(loader, posters, focus, "tile-1", tile.Options{})
	defer ctrl.Destroy()

	ctrl.HandleProximity(true)
	time.Sleep(testLoadDelay * 6)

	if posters.Len() != 0 {
		t.Fatalf("expected no poster after denied capture, got %d", posters.Len())
	}
	if ctrl.State() != tile.StateMounted {
		t.Fatalf("expected tile to keep functioning, got %s", ctrl.State())
	}
}

func TestDestroyMountedReleasesSynchronously(t *testing.T) {
	loader, posters, focus := newHarness(t)
	ctrl := newController(loader, posters, focus, "tile-1", tile.Options{})

	ctrl.HandleProximity(true)
	ctrl.Destroy()

	if loader.LiveCount() != 0 {
		t.Fatalf("expected zero live resources after destroy, got %d", loader.LiveCount())
	}
	if ctrl.State() != tile.StateUnmounted {
		t.Fatalf("expected unmounted after destroy, got %s", ctrl.State())
	}

	// Proximity events after destroy are ignored.
	ctrl.HandleProximity(true)
	if loader.AttachCount("tile-1") != 1 {
		t.Fatalf("destroyed controller attached again: %d", loader.AttachCount("tile-1"))
	}

	// Destroy is idempotent.
	ctrl.Destroy()
	if loader.LiveCount() != 0 {
		t.Fatalf("double destroy corrupted live count: %d", loader.LiveCount())
	}
}

func TestDestroyWhileReleasingCancelsTimer(t *testing.T) {
	loader, posters, focus := newHarness(t)
	ctrl := newController(loader, posters, focus, "tile-1", tile.Options{})

	ctrl.HandleProximity(true)
	ctrl.HandleProximity(false)
	if ctrl.State() != tile.StateReleasing {
		t.Fatalf("expected releasing, got %s", ctrl.State())
	}

	ctrl.Destroy()
	if loader.LiveCount() != 0 {
		t.Fatalf("expected destroy to close the resource, got %d live", loader.LiveCount())
	}

	// The canceled timer firing later must not double-close or remount.
	time.Sleep(testDebounce * 3)
	if loader.LiveCount() != 0 {
		t.Fatalf("timer resurrected a resource: %d live", loader.LiveCount())
	}
}

func TestStaleFirstFrameAfterDestroyIgnored(t *testing.T) {
	loader, posters, focus := newHarness(t)
	loader.SetScript("tile-1", media.Script{LoadDelay: 60 * time.Millisecond})
	ctrl := newController(loader, posters, focus, "tile-1", tile.Options{})

	ctrl.HandleProximity(true)
	ctrl.Destroy()

	time.Sleep(150 * time.Millisecond)
	if posters.Len() != 0 {
		t.Fatalf("stale first frame captured a poster after destroy")
	}
}

func TestViewPrecedence(t *testing.T) {
	loader, posters, focus := newHarness(t)

	blank := tile.NewController(testTile("no-fallback"), loader, posters, focus, logging.NewNop(), tile.Options{Debounce: testDebounce})
	defer blank.Destroy()
	if view := blank.View(); view.Kind != tile.ViewBlank {
		t.Fatalf("expected blank view, got %s", view.Kind)
	}

	withFallback := testTile("with-fallback")
	withFallback.FallbackPosterURL = "https://cdn.example/fallback.jpg"
	fb := tile.NewController(withFallback, loader, posters, focus, logging.NewNop(), tile.Options{Debounce: testDebounce})
	defer fb.Destroy()
	if view := fb.View(); view.Kind != tile.ViewFallback || view.URL != withFallback.FallbackPosterURL {
		t.Fatalf("expected fallback view, got %s (%q)", view.Kind, view.URL)
	}

	// A cached poster beats the fallback URL.
	posters.StoreIfAbsent("with-fallback", poster.Snapshot{Data: []byte{1}, Format: "jpeg"})
	if view := fb.View(); view.Kind != tile.ViewPoster {
		t.Fatalf("expected poster view once cached, got %s", view.Kind)
	}

	// A live resource beats everything.
	fb.HandleProximity(true)
	if view := fb.View(); view.Kind != tile.ViewLive || view.URL != withFallback.SourceURL {
		t.Fatalf("expected live view while mounted, got %s (%q)", view.Kind, view.URL)
	}
}

func TestSyncAudioFollowsFocus(t *testing.T) {
	loader, posters, focus := newHarness(t)
	a := newController(loader, posters, focus, "tile-a", tile.Options{})
	b := newController(loader, posters, focus, "tile-b", tile.Options{})
	defer a.Destroy()
	defer b.Destroy()

	a.HandleProximity(true)
	b.HandleProximity(true)

	resA := liveResource(t, a)
	resB := liveResource(t, b)

	if !resA.Muted() || !resB.Muted() {
		t.Fatal("expected both tiles muted before any focus")
	}

	focus.Request("tile-a")
	a.SyncAudio()
	b.SyncAudio()
	if resA.Muted() {
		t.Fatal("expected focused tile unmuted")
	}
	if !resB.Muted() {
		t.Fatal("expected unfocused tile muted")
	}

	focus.Request("tile-b")
	a.SyncAudio()
	b.SyncAudio()
	if !resA.Muted() {
		t.Fatal("expected previous holder forced back to muted")
	}
	if resB.Muted() {
		t.Fatal("expected new holder unmuted")
	}
}

func TestMountAppliesExistingFocus(t *testing.T) {
	loader, posters, focus := newHarness(t)
	ctrl := newController(loader, posters, focus, "tile-1", tile.Options{})
	defer ctrl.Destroy()

	focus.Request("tile-1")
	ctrl.HandleProximity(true)

	res := liveResource(t, ctrl)
	if res.Muted() {
		t.Fatal("expected tile mounted with focus to start unmuted")
	}
}

// liveResource returns the controller's attached simulated resource.
func liveResource(t *testing.T, ctrl *tile.Controller) *media.SimulatedResource {
	t.Helper()

	res := ctrl.Resource()
	if res == nil {
		t.Fatalf("tile %s has no live resource", ctrl.Tile().ID)
	}
	sim, ok := res.(*media.SimulatedResource)
	if !ok {
		t.Fatalf("unexpected resource type %T", res)
	}
	return sim
}
