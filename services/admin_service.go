package services

import (
	"context"
	"fmt"

	"tickethub/internal/status"
	"tickethub/monitoring"
	"tickethub/notify"
)

type AdminService struct {
	app     *App
	uploads *UploadService
}

func NewAdminService(app *App, uploads *UploadService) *AdminService {
	return &AdminService{app: app, uploads: uploads}
}

// DeleteUser removes a user and every listing they were selling. Orders
// that reference the removed user or tickets stay behind as historical
// records; views render the gap as "Unknown". Admin accounts cannot be
// removed.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) (err error) {
	defer func() { monitoring.RecordOperation("delete_user", err) }()

	s.app.mu.Lock()
	defer s.app.mu.Unlock()

	actor := s.app.State.CurrentUser
	if actor == nil || !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", status.ErrForbidden)
	}

	target := s.app.State.UserByID(userID)
	if target == nil {
		return fmt.Errorf("%w: user %s", status.ErrNotFound, userID)
	}
	if target.IsAdmin() {
		return fmt.Errorf("%w: admin accounts cannot be removed", status.ErrForbidden)
	}

	users := s.app.State.Users[:0]
	for _, u := range s.app.State.Users {
		if u.ID != userID {
			users = append(users, u)
		}
	}
	s.app.State.Users = users

	tickets := s.app.State.Tickets[:0]
	for _, t := range s.app.State.Tickets {
		if t.SellerID != userID {
			tickets = append(tickets, t)
			continue
		}
		if t.File != nil {
			s.uploads.release(t.File.BlobHandle)
		}
	}
	s.app.State.Tickets = tickets

	s.app.persist(ctx)
	s.app.notifier.Notify(ctx, notify.LevelSuccess, "User deleted successfully")
	return nil
}
