// Package media defines the playback surface tile controllers drive.
//
// A Loader attaches a Resource per mounted tile; resources expose the few
// operations the lifecycle needs: start playback, flip mute for audio
// focus, capture a poster frame, and close. The sentinel errors mirror the
// failure modes embedded platforms produce, such as autoplay rejection and
// read-protected frame buffers, so controllers can absorb them by class.
//
// SimulatedLoader is the only implementation in tree. It synthesizes
// deterministic frames per tile, delivers first-frame callbacks on a
// timer, and counts live resources so tests can prove teardown released
// everything.
package media
