package notification

import (
	"time"

	"github.com/workhive-crm/crm-backend-go/internal/domain/attendance"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/sse"
)

// ReviewerStream is the shared hub key manager and founder dashboards
// subscribe to for incoming submissions.
const ReviewerStream = "reviewers"

const (
	eventSubmitted = "attendance.submitted"
	eventReviewed  = "attendance.reviewed"
)

// SSENotifier publishes attendance lifecycle events over the in-process hub.
// The hub drops events for slow subscribers, so publishing never blocks the
// request path.
type SSENotifier struct {
	hub *sse.Hub
}

func NewSSENotifier(hub *sse.Hub) attendance.Notifier {
	return &SSENotifier{hub: hub}
}

type submittedPayload struct {
	AttendanceID string `json:"attendance_id"`
	UserID       string `json:"user_id"`
	ProjectID    string `json:"project_id"`
	ProjectTitle string `json:"project_title"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

type reviewedPayload struct {
	AttendanceID string  `json:"attendance_id"`
	Status       string  `json:"status"`
	VerifiedBy   *string `json:"verified_by,omitempty"`
}

// AttendanceSubmitted implements attendance.Notifier.
func (n *SSENotifier) AttendanceSubmitted(rec attendance.Record, projectTitle string) {
	payload := submittedPayload{
		AttendanceID: rec.ID,
		UserID:       rec.UserID,
		ProjectID:    rec.ProjectID,
		ProjectTitle: projectTitle,
		Date:         rec.Date.Format(time.DateOnly),
		Status:       string(rec.Status),
	}
	n.hub.Publish(ReviewerStream, sse.Event{
		UserID: ReviewerStream,
		Event:  eventSubmitted,
		Data:   payload,
	})
}

// AttendanceReviewed implements attendance.Notifier. The submitting member
// hears about their own record's outcome.
func (n *SSENotifier) AttendanceReviewed(rec attendance.Record) {
	n.hub.Publish(rec.UserID, sse.Event{
		UserID: rec.UserID,
		Event:  eventReviewed,
		Data: reviewedPayload{
			AttendanceID: rec.ID,
			Status:       string(rec.Status),
			VerifiedBy:   rec.VerifiedBy,
		},
	})
}
