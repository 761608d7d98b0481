// Package directory holds the Directory Client's view state. State is a plain
// value; Update applies one event and returns the next state without side
// effects, so the browse TUI and the CLI share the same behavior.
package directory

import (
	"strings"

	"github.com/rohits-web03/robofriends/internal/client"
	"github.com/rohits-web03/robofriends/internal/models"
)

// Prompts shown to the user. A non-empty State.Prompt blocks until dismissed.
const (
	PromptGenerateInputs = "Please fill out first name, last name, and select a style to generate an image."
	PromptSubmitInputs   = "Please fill out all fields and generate an image."
	PromptPhoneTaken     = "A robot with this phone number already exists. Please use a different number."
	promptErrorPrefix    = "An error occurred: "
)

// Field names a free-text form input.
type Field int

const (
	FieldFirstName Field = iota
	FieldLastName
	FieldUsername
	FieldEmail
	FieldPhone
)

type Form struct {
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Style     models.Style `json:"style"`
	Image     string       `json:"image"`
}

// Name is the display name stored for the robot.
func (f Form) Name() string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}

// Candidate is the record Create will be called with.
func (f Form) Candidate() models.NewRobot {
	return models.NewRobot{
		Name:      f.Name(),
		Username:  f.Username,
		Email:     f.Email,
		Phone:     f.Phone,
		Image:     f.Image,
		StyleType: string(f.Style),
	}
}

// Complete reports whether every field the submit step checks is set.
func (f Form) Complete() bool {
	return f.Name() != "" && f.Username != "" && f.Email != "" && f.Phone != "" && f.Image != ""
}

func (f Form) set(field Field, value string) Form {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldUsername:
		f.Username = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	}
	return f
}

type State struct {
	Robots     []models.Robot `json:"robots"`
	Loading    bool           `json:"loading"`
	LoadErr    string         `json:"loadErr,omitempty"`
	Search     string         `json:"search"`
	ModalOpen  bool           `json:"modalOpen"`
	Form       Form           `json:"form"`
	Submitting bool           `json:"submitting"`
	Prompt     string         `json:"prompt,omitempty"`
}

// Visible is the search-filtered list.
func (s State) Visible() []models.Robot {
	return Filter(s.Robots, s.Search)
}

// Filter keeps robots whose name contains search, ignoring case.
func Filter(robots []models.Robot, search string) []models.Robot {
	needle := strings.ToLower(search)
	out := make([]models.Robot, 0, len(robots))
	for _, r := range robots {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Event is an input to Update.
type Event interface {
	apply(State) State
}

type (
	LoadStarted     struct{}
	Loaded          struct{ Robots []models.Robot }
	LoadFailed      struct{ Err error }
	SearchChanged   struct{ Text string }
	FormOpened      struct{}
	FormClosed      struct{}
	StyleSelected   struct{ Style models.Style }
	GenerateClicked struct{}
	SubmitClicked   struct{}
	PhoneChecked    struct{ Exists bool }
	Created         struct{ Robot models.Robot }
	SubmitFailed    struct{ Err error }
	PromptDismissed struct{}
)

type FieldChanged struct {
	Field Field
	Value string
}

// Update returns the state after e. s is not modified.
func Update(s State, e Event) State {
	s.Robots = append([]models.Robot(nil), s.Robots...)
	return e.apply(s)
}

func (LoadStarted) apply(s State) State {
	s.Loading = true
	s.LoadErr = ""
	return s
}

func (e Loaded) apply(s State) State {
	s.Loading = false
	s.Robots = append([]models.Robot{}, e.Robots...)
	return s
}

func (e LoadFailed) apply(s State) State {
	s.Loading = false
	s.Robots = []models.Robot{}
	if e.Err != nil {
		s.LoadErr = client.Message(e.Err)
	}
	return s
}

func (e SearchChanged) apply(s State) State {
	s.Search = e.Text
	return s
}

func (FormOpened) apply(s State) State {
	s.ModalOpen = true
	return s
}

// Closing discards the form. An in-flight submission keeps its flag until it finishes.
func (FormClosed) apply(s State) State {
	s.ModalOpen = false
	s.Form = Form{}
	return s
}

func (e FieldChanged) apply(s State) State {
	s.Form = s.Form.set(e.Field, e.Value)
	return s
}

func (e StyleSelected) apply(s State) State {
	s.Form.Style = e.Style
	return s
}

func (GenerateClicked) apply(s State) State {
	url, err := models.AvatarURL(s.Form.FirstName, s.Form.LastName, s.Form.Style)
	if err != nil {
		s.Prompt = PromptGenerateInputs
		return s
	}
	s.Form.Image = url
	return s
}

func (SubmitClicked) apply(s State) State {
	if s.Submitting {
		return s
	}
	if !s.Form.Complete() {
		s.Prompt = PromptSubmitInputs
		return s
	}
	s.Submitting = true
	s.Prompt = ""
	return s
}

func (e PhoneChecked) apply(s State) State {
	if e.Exists {
		s.Submitting = false
		s.Prompt = PromptPhoneTaken
	}
	return s
}

func (e Created) apply(s State) State {
	s.Robots = append(s.Robots, e.Robot)
	s.Submitting = false
	s.ModalOpen = false
	s.Form = Form{}
	return s
}

func (e SubmitFailed) apply(s State) State {
	s.Submitting = false
	s.Prompt = promptErrorPrefix + client.Message(e.Err)
	return s
}

func (PromptDismissed) apply(s State) State {
	s.Prompt = ""
	return s
}
