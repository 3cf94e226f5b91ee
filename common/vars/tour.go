package vars

import (
	"sync/atomic"
	"unsafe"

	"travel-ties/model"
)

// tourDataPtr holds a pointer to the current slice of tour listing data.
// This approach allows for lock-free reads with atomic updates.
var tourDataPtr unsafe.Pointer

// GetTours returns the current tour listing snapshot.
// This operation is lock-free and safe for concurrent access.
func GetTours() []model.TourResponse {
	ptr := atomic.LoadPointer(&tourDataPtr)
	if ptr == nil {
		return nil
	}
	return *(*[]model.TourResponse)(ptr)
}

// SetTours atomically replaces the tour listing snapshot.
// It copies the input so later mutations by the caller cannot leak in.
func SetTours(tours []model.TourResponse) {
	var ptr unsafe.Pointer

	if len(tours) > 0 {
		toursCopy := make([]model.TourResponse, len(tours))
		copy(toursCopy, tours)
		ptr = unsafe.Pointer(&toursCopy)
	}

	atomic.StorePointer(&tourDataPtr, ptr)
}

func init() {
	atomic.StorePointer(&tourDataPtr, nil)
}
