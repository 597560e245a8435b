package app

import (
	"github.com/colonyops/pulse/internal/core/notify"
)

// DemoKind selects one of the showcase notifications.
type DemoKind int

const (
	DemoSuccess DemoKind = iota + 1
	DemoError
	DemoWarning
	DemoInfoWithAction
	DemoPersistent
)

// DemoService raises the showcase notifications bound to the demo keys.
type DemoService struct {
	manager *notify.Manager
}

// NewDemoService creates a demo service backed by manager.
func NewDemoService(manager *notify.Manager) *DemoService {
	return &DemoService{manager: manager}
}

// Requests returns the request behind each demo kind. Timed demos use the
// manager's default duration.
func (s *DemoService) Requests() map[DemoKind]notify.Request {
	return map[DemoKind]notify.Request{
		DemoSuccess: {
			Kind:    notify.KindSuccess,
			Title:   "Success!",
			Message: "Your changes have been saved successfully.",
		},
		DemoError: {
			Kind:    notify.KindError,
			Title:   "Error occurred",
			Message: "Failed to process your request. Please try again.",
		},
		DemoWarning: {
			Kind:    notify.KindWarning,
			Title:   "Warning",
			Message: "Your session will expire in 5 minutes.",
		},
		DemoInfoWithAction: {
			Kind:    notify.KindInfo,
			Title:   "New update available",
			Message: "Version 2.0 is now available for download.",
			Action:  &notify.Action{
				Label: "Update Now",
				Run:   func() {
					s.manager.Add(notify.Request{
						Kind:    notify.KindSuccess,
						Title:   "Updating...",
						Message: "The update is being installed.",
					})
				},
			},
		},
		DemoPersistent: {
			Kind:       notify.KindInfo,
			Title:      "Important Notice",
			Message:    "This notification will stay until you dismiss it.",
			Persistent: true,
		},
	}
}

// Trigger raises the demo notification for kind and returns its id. Unknown
// kinds return "".
func (s *DemoService) Trigger(kind DemoKind) string {
	req, ok := s.Requests()[kind]
	if !ok {
		return ""
	}
	return s.manager.Add(req)
}
