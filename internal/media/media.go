package media

import (
	"context"
	"errors"

	"clipgrid/internal/catalog"
	"clipgrid/internal/poster"
)

var (
	// ErrLoadFailed indicates the media source could not be attached.
	ErrLoadFailed = errors.New("media load failed")
	// ErrPlaybackRejected indicates the platform refused to start playback.
	ErrPlaybackRejected = errors.New("playback rejected")
	// ErrCaptureDenied indicates the decoded frame cannot be read back.
	ErrCaptureDenied = errors.New("frame capture denied")
	// ErrResourceClosed indicates an operation on a released resource.
	ErrResourceClosed = errors.New("media resource closed")
)

// Resource is a live playback handle for one tile. Resources start muted;
// audio focus flips mute state rather than stopping playback.
type Resource interface {
	TileID() string
	Play() error
	SetMuted(muted bool) error
	CaptureFrame() (poster.Snapshot, error)
	Close() error
}

// Loader attaches playback resources for tiles. onFirstFrame fires
// asynchronously once the first frame is decoded. A callback can race a
// concurrent Close, so callers must drop invocations for resources they no
// longer hold.
type Loader interface {
	Attach(ctx context.Context, tile catalog.Tile, onFirstFrame func(Resource)) (Resource, error)
}
