// Package controller implements the client-side CRUD state machine shared
// by every roster front end.
//
// # Overview
//
// The controller owns a local view of the remote users collection and
// sequences load, create, update, and delete operations against the API.
// Presentation layers (the Bubble Tea TUI and the line-mode client) are
// thin adapters: they translate user input into commands, dispatch them,
// and render the snapshots the controller publishes.
//
// # State
//
// A Snapshot carries five pieces of state:
//
//   - Users: the collection cache, replaced wholesale after every
//     successful load — never patched in place
//   - Draft: the editable record-in-progress, always defined
//   - EditTarget: nil in create mode, a record id in update mode
//   - Busy/Op: the single-flight flag and the in-flight operation label
//   - Err: the most recent failure message
//
// # Single-flight
//
// At most one operation runs at a time. Dispatch of any command while Busy
// is a refused no-op; it is never queued and never becomes a second
// concurrent request. Network commands run to completion on the dispatching
// goroutine, so front ends that must stay responsive call Dispatch from a
// worker goroutine and render from the subscription callback.
//
// # Chained reload
//
// Every successful mutation is followed, within the same logical operation,
// by a full reload of the collection. This is the only cache-consistency
// mechanism: there are no targeted inserts, updates, or removals. When the
// chained reload fails the mutation stands, the error slot reports the
// failure, and the cache stays stale until the next successful load.
//
// # Validation
//
// Submit requires a trimmed non-empty name and email. An invalid draft is
// rejected locally: no request is sent, no busy transition happens, and the
// error slot carries a validation message. Request failures on create and
// update preserve the draft and edit target so the user can retry.
package controller
