// internal/domain/order/merge.go
package order

import "time"

// StatusUpdate is one push from the status feed
type StatusUpdate struct {
	Status    OrderStatus `json:"status"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Merge overlays a pushed status on a polled order. The push wins for
// status and updatedAt; every other field comes from the poll. A cancelled
// order stays cancelled, and pushes carrying an unknown status are ignored.
func Merge(polled Order, push *StatusUpdate) Order {
	merged := polled
	merged.Items = append([]Item(nil), polled.Items...)

	if push == nil || !push.Status.IsValid() {
		return merged
	}
	if polled.Status == OrderStatusCancelled {
		return merged
	}

	merged.Status = push.Status
	if !push.UpdatedAt.IsZero() {
		merged.UpdatedAt = push.UpdatedAt
	}
	return merged
}
