// Package service holds the request-scoped logic between the HTTP handlers
// and the repositories: the user directory and the films dashboard.
package service

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/iliyamo/rental-admin/internal/metrics"
	"github.com/iliyamo/rental-admin/internal/model"
	"github.com/iliyamo/rental-admin/internal/queue"
	"github.com/iliyamo/rental-admin/internal/repository"
)

// UserStore is the slice of repository.UserRepo the directory needs.
type UserStore interface {
	List(ctx context.Context, kind model.UserKind, active bool, f repository.NameFilter) ([]model.DirectoryUser, error)
	Get(ctx context.Context, kind model.UserKind, id uint64) (model.DirectoryUser, error)
	SetActive(ctx context.Context, kind model.UserKind, id uint64, active bool) error
}

// StatusPublisher announces a written status change.
type StatusPublisher interface {
	PublishStatusChanged(ctx context.Context, ev queue.StatusChangedEvent) error
}

// publishTimeout bounds one background status event publish.
const publishTimeout = 5 * time.Second

// DirectoryService lists customers and staff together and flips their active
// flag.
type DirectoryService struct {
	users   UserStore
	events  StatusPublisher // nil disables events
	now     func() time.Time
	pending sync.WaitGroup
}

func NewDirectoryService(users UserStore, events StatusPublisher) *DirectoryService {
	return &DirectoryService{users: users, events: events, now: time.Now}
}

// Wait blocks until every status event started by SetStatus has been
// published or has failed.
func (s *DirectoryService) Wait() { s.pending.Wait() }

// List partitions all customers and staff matching search by their active
// flag.  Within each partition customers come first, then staff, each group
// ordered by last_update descending.
func (s *DirectoryService) List(ctx context.Context, search string) (model.UserListing, error) {
	f := repository.NewNameFilter(search)
	out := model.UserListing{
		ActiveUsers:   []model.DirectoryUser{},
		InactiveUsers: []model.DirectoryUser{},
	}
	for _, kind := range model.Kinds {
		active, err := s.users.List(ctx, kind, true, f)
		if err != nil {
			return model.UserListing{}, err
		}
		inactive, err := s.users.List(ctx, kind, false, f)
		if err != nil {
			return model.UserListing{}, err
		}
		out.ActiveUsers = append(out.ActiveUsers, active...)
		out.InactiveUsers = append(out.InactiveUsers, inactive...)
	}
	return out, nil
}

// SetStatus writes u.Active to the user identified by u.Kind and u.ID.  It
// returns repository.ErrNotFound when no such user exists.  The change event
// is published in the background and outlives the request context; a broker
// failure is logged and never fails the update.
func (s *DirectoryService) SetStatus(ctx context.Context, u model.StatusUpdate) error {
	if _, err := s.users.Get(ctx, u.Kind, u.ID); err != nil {
		return err
	}
	if err := s.users.SetActive(ctx, u.Kind, u.ID, u.Active); err != nil {
		return err
	}
	metrics.StatusUpdates.WithLabelValues(u.Kind.String(), strconv.FormatBool(u.Active)).Inc()

	if s.events == nil {
		return nil
	}
	ev := queue.NewStatusChangedEvent(u, s.now())
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()
		s.publish(pubCtx, ev)
	}()
	return nil
}

func (s *DirectoryService) publish(ctx context.Context, ev queue.StatusChangedEvent) {
	err := s.events.PublishStatusChanged(ctx, ev)
	metrics.EventsPublished.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		slog.WarnContext(ctx, "status event not published", "event_id", ev.EventID, "type", ev.UserType, "id", ev.UserID, "error", err)
	}
}
