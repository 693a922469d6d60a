// Package tui is the terminal demo: a horizontal pager of grids whose
// vertical scroll positions are kept in sync by a scrollsync.Coordinator.
package tui
