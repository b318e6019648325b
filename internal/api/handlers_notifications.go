package api

import (
	"net/http"
	"strings"

	"github.com/healthscript/healthscript-backend/internal/model"
)

const msgNotificationNotFound = "Notification not found"

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, unread, err := s.records.ListNotifications(r.Context(), identityFromContext(r.Context()).UserID, model.NotificationFilter{
		UnreadOnly: queryBool(r, "unreadOnly"),
		Type:       strings.TrimSpace(r.URL.Query().Get("type")),
	})
	if err != nil {
		s.writeRecordsError(w, r, err, msgNotificationNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.NotificationListResponse{
		Envelope:      model.OK(""),
		Notifications: notifications,
		UnreadCount:   unread,
	})
}

func (s *Server) createNotification(w http.ResponseWriter, r *http.Request) {
	var req model.NewNotification
	if !decodeJSON(w, r, &req) {
		return
	}

	notification, err := s.records.CreateNotification(r.Context(), identityFromContext(r.Context()).UserID, req)
	if err != nil {
		s.writeRecordsError(w, r, err, msgNotificationNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, model.NotificationResponse{
		Envelope:     model.OK("Notification created successfully"),
		Notification: notification,
	})
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotificationNotFound)
		return
	}

	notification, err := s.records.MarkNotificationRead(r.Context(), identityFromContext(r.Context()).UserID, id)
	if err != nil {
		s.writeRecordsError(w, r, err, msgNotificationNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.NotificationResponse{
		Envelope:     model.OK("Notification marked as read"),
		Notification: notification,
	})
}
