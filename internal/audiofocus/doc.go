// Package audiofocus arbitrates which tile may play sound.
//
// At most one tile holds focus at a time. Requesting focus toggles it:
// the current holder releases, any other tile takes over. The coordinator
// stores level state only; grids re-sync every controller's mute flag
// against IsFocused after each change instead of chasing transitions.
package audiofocus
