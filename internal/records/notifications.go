package records

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/healthscript/healthscript-backend/internal/model"
)

// ListNotifications returns the filtered notifications, newest first, and
// the user's total unread count regardless of the filter.
func (s *Service) ListNotifications(ctx context.Context, userID int64, filter model.NotificationFilter) ([]model.Notification, int, error) {
	all, err := s.repo.ListNotifications(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	kind := strings.TrimSpace(filter.Type)
	unread := 0
	out := make([]model.Notification, 0, len(all))
	for _, n := range all {
		if !n.Read {
			unread++
		}
		if filter.UnreadOnly && n.Read {
			continue
		}
		if kind != "" && n.Type != kind {
			continue
		}
		out = append(out, n)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, unread, nil
}

func (s *Service) CreateNotification(ctx context.Context, userID int64, in model.NewNotification) (model.Notification, error) {
	now := s.now()
	n := model.Notification{
		UserID:       userID,
		Title:        strings.TrimSpace(in.Title),
		Message:      strings.TrimSpace(in.Message),
		Type:         model.NotificationGeneral,
		Priority:     model.PriorityMedium,
		CreatedAt:    now,
		ScheduledFor: now,
	}
	if n.Title == "" || n.Message == "" {
		return model.Notification{}, ErrRequiredFields
	}
	if strings.TrimSpace(in.Type) != "" {
		kind, err := canonical("type", in.Type,
			model.NotificationMedication, model.NotificationAppointment, model.NotificationRefill, model.NotificationGeneral)
		if err != nil {
			return model.Notification{}, err
		}
		n.Type = kind
	}
	if strings.TrimSpace(in.Priority) != "" {
		priority, err := canonical("priority", in.Priority, model.PriorityLow, model.PriorityMedium, model.PriorityHigh)
		if err != nil {
			return model.Notification{}, err
		}
		n.Priority = priority
	}
	if raw := strings.TrimSpace(in.ScheduledFor); raw != "" {
		scheduled, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return model.Notification{}, invalid("scheduledFor", "scheduledFor must be an RFC 3339 timestamp")
		}
		n.ScheduledFor = scheduled
	}

	created, err := s.repo.CreateNotification(ctx, n)
	if err != nil {
		return model.Notification{}, err
	}
	if b := s.currentBroadcaster(); b != nil {
		b.NotificationCreated(created)
	}
	return created, nil
}

func (s *Service) MarkNotificationRead(ctx context.Context, userID, id int64) (model.Notification, error) {
	n, err := s.repo.UpdateNotification(ctx, userID, id, func(n *model.Notification) error {
		n.Read = true
		return nil
	})
	if err != nil {
		return model.Notification{}, translate(err)
	}
	if b := s.currentBroadcaster(); b != nil {
		b.NotificationRead(n)
	}
	return n, nil
}
