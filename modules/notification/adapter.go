package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// notificationAdapter reads the kitchen log over the module's container.
type notificationAdapter struct {
	container mono.ServiceContainer
}

// NewNotificationAdapter creates a NotificationPort backed by request-reply
// calls.
func NewNotificationAdapter(container mono.ServiceContainer) NotificationPort {
	if container == nil {
		panic("notification adapter requires non-nil ServiceContainer")
	}
	return &notificationAdapter{container: container}
}

func (a *notificationAdapter) ListEntries(ctx context.Context, orderID int64) ([]Entry, error) {
	var resp ListEntriesResponse
	req := ListEntriesRequest{OrderID: orderID}
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceListEntries,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceListEntries, err)
	}
	return resp.Entries, nil
}
