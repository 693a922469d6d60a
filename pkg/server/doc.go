// Package server hosts scroll-synchronized grids that live in browsers.
//
// Each browser connects a WebSocket to /ws?group=<name>. Every grid the
// page registers becomes a container of the group's shared
// scrollsync.Coordinator, so grids on different pages, tabs or machines in
// the same group scroll together.
//
// # Architecture
//
//   - Hub: one Coordinator per group, reference-counted by sessions and
//     released when the last session leaves
//   - Session: one per WebSocket connection; a single read loop applies
//     inbound messages to the session's grids
//   - remoteGrid: the Container for one browser grid; its signals mirror
//     what the browser reports and ScrollTo is sent back as "scroll_to"
//
// All message handling for a group runs under the group's lock, so the
// coordinator of a group observes one ordered stream of events no matter
// how many connections feed it.
//
// # Routes
//
//	GET /          demo page: a horizontal pager of grids
//	GET /ws        WebSocket endpoint (?group=<name>, default "default")
//	GET /groups    JSON summary of active groups
//	GET /metrics   Prometheus metrics
//	GET /healthz   liveness probe
package server
