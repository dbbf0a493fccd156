package main

import (
	"github.com/cristianoliveira/portal-notify/internal/colors"
	"github.com/cristianoliveira/portal-notify/internal/store"
)

// hintSource tells the user when the printed data did not come from the
// backend.
func hintSource(snap store.Snapshot) {
	if snap.Source == store.SourceFallback {
		colors.Hint("(offline data)")
	}
}
