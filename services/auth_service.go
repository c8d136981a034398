package services

import (
	"context"
	"fmt"
	"time"

	"tickethub/internal/status"
	"tickethub/models"
	"tickethub/monitoring"
	"tickethub/notify"
	"tickethub/utils"
)

type AuthService struct {
	app *App
}

func NewAuthService(app *App) *AuthService {
	return &AuthService{app: app}
}

// Login authenticates by exact, case-sensitive email+password match. On
// failure the session is left exactly as it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (user *models.User, err error) {
	defer func() { monitoring.RecordOperation("login", err) }()

	s.app.mu.Lock()
	defer s.app.mu.Unlock()

	if email == "" || password == "" {
		s.app.notifier.Notify(ctx, notify.LevelError, "Please fill in all fields")
		return nil, fmt.Errorf("%w: email and password are required", status.ErrValidation)
	}

	for _, u := range s.app.State.Users {
		if u.Email == email && u.Password == password {
			user = u
			break
		}
	}
	if user == nil {
		s.app.notifier.Notify(ctx, notify.LevelError, "Invalid email or password")
		return nil, status.ErrInvalidCredentials
	}

	s.app.State.CurrentUser = user
	s.app.persist(ctx)
	s.app.notifier.Notify(ctx, notify.LevelSuccess, fmt.Sprintf("Welcome back, %s!", user.Name))
	return user, nil
}

// Signup registers a new user with role "user" and signs them in.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (user *models.User, err error) {
	defer func() { monitoring.RecordOperation("signup", err) }()

	s.app.mu.Lock()
	defer s.app.mu.Unlock()

	if email == "" || password == "" || name == "" {
		s.app.notifier.Notify(ctx, notify.LevelError, "Please fill in all fields")
		return nil, fmt.Errorf("%w: email, password and name are required", status.ErrValidation)
	}
	if s.app.State.UserByEmail(email) != nil {
		s.app.notifier.Notify(ctx, notify.LevelError, "Email already registered")
		return nil, status.ErrEmailTaken
	}

	user = &models.User{
		ID:        utils.NewID("user"),
		Email:     email,
		Password:  password,
		Name:      name,
		Role:      models.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	s.app.State.Users = append(s.app.State.Users, user)
	s.app.State.CurrentUser = user
	s.app.persist(ctx)
	s.app.notifier.Notify(ctx, notify.LevelSuccess, fmt.Sprintf("Welcome, %s!", name))
	return user, nil
}

// Logout clears the session and returns the UI home.
func (s *AuthService) Logout(ctx context.Context) {
	s.app.mu.Lock()
	defer s.app.mu.Unlock()

	s.app.State.CurrentUser = nil
	s.app.State.CurrentPage = models.PageHome
	s.app.persist(ctx)
	s.app.notifier.Notify(ctx, notify.LevelSuccess, "Logged out successfully")
	monitoring.RecordOperation("logout", nil)
}
