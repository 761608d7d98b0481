package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rohits-web03/robofriends/internal/api"
	"github.com/rohits-web03/robofriends/internal/client"
	"github.com/rohits-web03/robofriends/internal/config"
	"github.com/rohits-web03/robofriends/internal/models"
	"github.com/rohits-web03/robofriends/internal/repositories"
	"github.com/rohits-web03/robofriends/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAPI records calls in order.
type fakeAPI struct {
	robots   []models.Robot
	listErr  error
	phones   map[string]bool
	phoneErr error
	create   func(models.NewRobot) (models.Robot, error)
	calls    []string
}

func (f *fakeAPI) List(context.Context) ([]models.Robot, error) {
	f.calls = append(f.calls, "list")
	return f.robots, f.listErr
}

func (f *fakeAPI) CheckPhone(_ context.Context, phone string) (bool, error) {
	f.calls = append(f.calls, "check:"+phone)
	return f.phones[phone], f.phoneErr
}

func (f *fakeAPI) Create(_ context.Context, in models.NewRobot) (models.Robot, error) {
	f.calls = append(f.calls, "create:"+in.Phone)
	if f.create != nil {
		return f.create(in)
	}
	return in.Robot(), nil
}

func TestLoad(t *testing.T) {
	fa := &fakeAPI{robots: named("Alice", "Bob")}
	s := Load(context.Background(), fa, State{})
	assert.False(t, s.Loading)
	assert.Equal(t, []string{"Alice", "Bob"}, names(s.Robots))

	fa = &fakeAPI{listErr: errors.New("offline")}
	s = Load(context.Background(), fa, State{})
	assert.Empty(t, s.Robots)
	assert.Equal(t, "offline", s.LoadErr)
}

func TestSubmit_Success(t *testing.T) {
	fa := &fakeAPI{}
	s := Submit(context.Background(), fa, State{ModalOpen: true, Form: filledForm()})

	assert.Equal(t, []string{"check:555-0100", "create:555-0100"}, fa.calls)
	assert.Equal(t, []string{"Rob Ot"}, names(s.Robots))
	assert.False(t, s.ModalOpen)
	assert.False(t, s.Submitting)
	assert.Equal(t, Form{}, s.Form)
}

func TestSubmit_PhoneTakenSkipsCreate(t *testing.T) {
	fa := &fakeAPI{phones: map[string]bool{"555-0100": true}}
	s := Submit(context.Background(), fa, State{ModalOpen: true, Form: filledForm()})

	assert.Equal(t, []string{"check:555-0100"}, fa.calls)
	assert.Equal(t, PromptPhoneTaken, s.Prompt)
	assert.Empty(t, s.Robots)
	assert.True(t, s.ModalOpen)
	assert.False(t, s.Submitting)
}

func TestSubmit_CheckFailureSkipsCreate(t *testing.T) {
	fa := &fakeAPI{phoneErr: &client.TransportError{Status: 200, Msg: "expected JSON response"}}
	s := Submit(context.Background(), fa, State{Form: filledForm()})

	assert.Equal(t, []string{"check:555-0100"}, fa.calls)
	assert.Contains(t, s.Prompt, "expected JSON response")
	assert.False(t, s.Submitting)
}

func TestSubmit_CreateFailureKeepsForm(t *testing.T) {
	fa := &fakeAPI{create: func(models.NewRobot) (models.Robot, error) {
		return models.Robot{}, client.ErrConflict
	}}
	s := Submit(context.Background(), fa, State{ModalOpen: true, Form: filledForm()})

	assert.Equal(t, "An error occurred: "+models.MsgAlreadyExists, s.Prompt)
	assert.Equal(t, filledForm(), s.Form)
	assert.False(t, s.Submitting)
}

func TestSubmit_GuardsInFlight(t *testing.T) {
	fa := &fakeAPI{}
	s := State{Form: filledForm(), Submitting: true}

	assert.Equal(t, s, Submit(context.Background(), fa, s))
	assert.Empty(t, fa.calls)
}

func TestSubmit_IncompleteFormMakesNoCalls(t *testing.T) {
	fa := &fakeAPI{}
	f := filledForm()
	f.Image = ""
	s := Submit(context.Background(), fa, State{Form: f})

	assert.Empty(t, fa.calls)
	assert.Equal(t, PromptSubmitInputs, s.Prompt)
}

// countingTransport counts requests per path so the end-to-end tests can
// assert Create was never sent.
type countingTransport struct {
	posts int
	base  http.RoundTripper
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Method == http.MethodPost {
		c.posts++
	}
	return c.base.RoundTrip(r)
}

func newEndToEnd(t *testing.T) (*client.Client, *countingTransport, *repositories.RobotRepository) {
	t.Helper()
	repo := repositories.NewRobotRepository(testutil.OpenInMemoryDB(t))
	srv := httptest.NewServer(api.SetupRouter(repo, config.Config{AllowedOrigins: []string{"*"}}, zap.NewNop()))
	t.Cleanup(srv.Close)
	ct := &countingTransport{base: &http.Transport{DisableKeepAlives: true}}
	return client.New(srv.URL, &http.Client{Transport: ct}), ct, repo
}

func fillForm(s State, first, last, user, email, phone string, style models.Style) State {
	s = Update(s, FormOpened{})
	s = Update(s, FieldChanged{Field: FieldFirstName, Value: first})
	s = Update(s, FieldChanged{Field: FieldLastName, Value: last})
	s = Update(s, FieldChanged{Field: FieldUsername, Value: user})
	s = Update(s, FieldChanged{Field: FieldEmail, Value: email})
	s = Update(s, FieldChanged{Field: FieldPhone, Value: phone})
	s = Update(s, StyleSelected{Style: style})
	return Update(s, GenerateClicked{})
}

func TestEndToEnd_AddRobot(t *testing.T) {
	c, ct, _ := newEndToEnd(t)
	ctx := context.Background()

	s := Load(ctx, c, State{})
	require.Empty(t, s.LoadErr)
	before := len(s.Robots)

	s = fillForm(s, "Rob", "Ot", "robot", "rob@ot.io", "555-0100", models.StyleRobots)
	assert.Contains(t, s.Form.Image, "RobOt")
	assert.Contains(t, s.Form.Image, ".png?set=set1")

	s = Submit(ctx, c, s)
	assert.Empty(t, s.Prompt)
	require.Len(t, s.Robots, before+1)
	assert.Equal(t, "Rob Ot", s.Robots[before].Name)
	assert.Equal(t, "Robots", s.Robots[before].StyleType)
	assert.False(t, s.ModalOpen)
	assert.Equal(t, Form{}, s.Form)
	assert.Equal(t, 1, ct.posts)
}

func TestEndToEnd_DuplicatePhone(t *testing.T) {
	c, ct, repo := newEndToEnd(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testutil.NewRobot("0100"))
	require.NoError(t, err)

	s := Load(ctx, c, State{})
	require.Len(t, s.Robots, 1)

	s = fillForm(s, "Rob", "Ot", "robot", "rob@ot.io", "555-0100", models.StyleMonsters)
	s = Submit(ctx, c, s)

	assert.Equal(t, PromptPhoneTaken, s.Prompt)
	assert.Len(t, s.Robots, 1)
	assert.Zero(t, ct.posts)
	assert.True(t, s.ModalOpen)
}
