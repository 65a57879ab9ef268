package notification

import "context"

// ServiceListEntries is the request-reply service that reads the kitchen log.
const ServiceListEntries = "list-entries"

// ListEntriesRequest filters the kitchen log. A zero OrderID returns every
// entry.
type ListEntriesRequest struct {
	OrderID int64 `json:"order_id,omitempty"`
}

// ListEntriesResponse carries kitchen log entries in arrival order.
type ListEntriesResponse struct {
	Entries []Entry `json:"entries"`
}

// NotificationPort is the contract driving adapters use to read the log.
type NotificationPort interface {
	ListEntries(ctx context.Context, orderID int64) ([]Entry, error)
}
