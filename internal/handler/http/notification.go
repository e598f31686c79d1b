package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workhive-crm/crm-backend-go/internal/domain/user"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/sse"
	"github.com/workhive-crm/crm-backend-go/internal/service/notification"
)

type NotificationHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	hub *sse.Hub
}

func NewNotificationHandler(hub *sse.Hub) NotificationHandler {
	return &notificationHandlerImpl{hub: hub}
}

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

func getRoleFromContext(r *http.Request) user.Role {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if role, ok := claims["role"].(string); ok {
		return user.Role(role)
	}
	return ""
}

// Stream handles the SSE connection for real-time attendance events. Members
// hear decisions on their own records; managers and founders additionally
// hear incoming submissions.
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Missing authentication", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ownEvents, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	// Nil channel when not a reviewer; the select arm simply never fires.
	var reviewerEvents chan sse.Event
	if getRoleFromContext(r).IsManager() {
		var reviewerCleanup func()
		reviewerEvents, reviewerCleanup = h.hub.Subscribe(notification.ReviewerStream)
		defer reviewerCleanup()
	}

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":\"%s\"}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	writeEvent := func(event sse.Event) {
		data, err := json.Marshal(event.Data)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
		flusher.Flush()
	}

	for {
		select {
		case event, ok := <-ownEvents:
			if !ok {
				return
			}
			writeEvent(event)

		case event, ok := <-reviewerEvents:
			if !ok {
				return
			}
			writeEvent(event)

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
