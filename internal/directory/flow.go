package directory

import (
	"context"

	"github.com/rohits-web03/robofriends/internal/models"
)

// API is the service surface the client flow uses. *client.Client satisfies it.
type API interface {
	List(ctx context.Context) ([]models.Robot, error)
	CheckPhone(ctx context.Context, phone string) (bool, error)
	Create(ctx context.Context, in models.NewRobot) (models.Robot, error)
}

// Load fetches the list. On failure the list is left empty.
func Load(ctx context.Context, api API, s State) State {
	s = Update(s, LoadStarted{})
	robots, err := api.List(ctx)
	if err != nil {
		return Update(s, LoadFailed{Err: err})
	}
	return Update(s, Loaded{Robots: robots})
}

// Submit runs one creation attempt: check the phone, then create. The two
// calls are made in order and Create is skipped when the check fails or the
// phone is taken. A state that is already submitting is returned unchanged.
func Submit(ctx context.Context, api API, s State) State {
	if s.Submitting {
		return s
	}
	s = Update(s, SubmitClicked{})
	if !s.Submitting {
		return s
	}
	candidate := s.Form.Candidate()

	exists, err := api.CheckPhone(ctx, candidate.Phone)
	if err != nil {
		return Update(s, SubmitFailed{Err: err})
	}
	if s = Update(s, PhoneChecked{Exists: exists}); exists {
		return s
	}

	robot, err := api.Create(ctx, candidate)
	if err != nil {
		return Update(s, SubmitFailed{Err: err})
	}
	return Update(s, Created{Robot: robot})
}
