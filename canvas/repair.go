package canvas

import (
	"log"

	"hypewear-studio/models"
)

// Repair corrects elements whose persisted coordinates fall outside [0,100]
// (schema drift from a prior buggy client or a partial write). An out-of-range
// axis is reset to 50 (recentered, not clamped): an out-of-range stored value
// is treated as corrupt rather than recoverable. Runs on every
// change to the element count and on load of persisted designs.
//
// Idempotent: a second pass over already-repaired elements changes nothing.
// Never returns an error; tolerated drift is not a user-facing failure.
func Repair(elements []models.DesignElement) int {
	repaired := 0
	for i := range elements {
		fixed := false
		if !InRange(elements[i].X) {
			elements[i].X = 50
			fixed = true
		}
		if !InRange(elements[i].Y) {
			elements[i].Y = 50
			fixed = true
		}
		if fixed {
			repaired++
			log.Printf("🔧 Repair: recentered out-of-range element id=%s", elements[i].ID)
		}
	}
	return repaired
}
