// Package protocol defines the JSON messages exchanged between a browser
// page hosting scrollable grids and the gridsync server.
//
// Every frame is one JSON object with a "type" field. Grid messages name
// the grid they refer to with a client-chosen id that is unique per
// connection.
//
// # Client to Server
//
//	{"type":"register","grid":"page-0","count":50}
//	{"type":"unregister","grid":"page-0"}
//	{"type":"scroll_start","grid":"page-0"}
//	{"type":"position","grid":"page-0","index":15,"offset":12}
//	{"type":"scroll_end","grid":"page-0"}
//	{"type":"count","grid":"page-0","count":80}
//
// # Server to Client
//
//	{"type":"hello","session":"6f1c...","group":"default"}
//	{"type":"scroll_to","grid":"page-1","index":15,"offset":12}
//	{"type":"error","code":"E063","message":"Unknown grid","fatal":false}
//
// A "position" message may be sent at any time; it only becomes a leader
// position between "scroll_start" and "scroll_end".
package protocol
