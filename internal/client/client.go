// Package client is the Directory Client's HTTP wrapper around /api/robots.
//
// Every call returns either its value or one of three error shapes:
// *ValidationError for a rejected create, ErrConflict for a duplicate
// username, email or phone, and *TransportError for everything else
// (network failures, non-JSON replies and unexpected statuses).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rohits-web03/robofriends/internal/models"
)

const (
	robotsPath   = "/api/robots"
	maxBodyBytes = 1 << 20
)

// ErrConflict is returned by Create when the service reports a duplicate.
var ErrConflict = errors.New(models.MsgAlreadyExists)

// ValidationError carries the service's message for a rejected create.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// TransportError covers failed requests and replies the client cannot use.
// Status is zero when no response was received.
type TransportError struct {
	Status int
	Msg    string
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Msg != "" && e.Status != 0:
		return fmt.Sprintf("%s (status %d)", e.Msg, e.Status)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the service at baseURL. A nil httpClient gets a
// default client with a 15 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// List fetches every robot.
func (c *Client) List(ctx context.Context) ([]models.Robot, error) {
	var robots []models.Robot
	if err := c.getJSON(ctx, robotsPath, &robots); err != nil {
		return nil, err
	}
	if robots == nil {
		robots = []models.Robot{}
	}
	return robots, nil
}

// CheckPhone reports whether a robot already uses phone. The phone is sent
// verbatim, path-escaped.
func (c *Client) CheckPhone(ctx context.Context, phone string) (bool, error) {
	var body struct {
		Exists bool `json:"exists"`
	}
	if err := c.getJSON(ctx, robotsPath+"/check-phone/"+url.PathEscape(phone), &body); err != nil {
		return false, err
	}
	return body.Exists, nil
}

// Create submits a new robot and returns the service's echo of it.
func (c *Client) Create(ctx context.Context, in models.NewRobot) (models.Robot, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return models.Robot{}, &TransportError{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+robotsPath, bytes.NewReader(payload))
	if err != nil {
		return models.Robot{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, isJSON, err := c.do(req)
	if err != nil {
		return models.Robot{}, err
	}

	if status < 200 || status > 299 {
		msg := errorMessage(body, isJSON)
		if status == http.StatusBadRequest && isJSON {
			if msg == models.MsgAlreadyExists {
				return models.Robot{}, ErrConflict
			}
			if msg != "" {
				return models.Robot{}, &ValidationError{Msg: msg}
			}
		}
		return models.Robot{}, &TransportError{Status: status, Msg: msg}
	}
	if !isJSON {
		return models.Robot{}, &TransportError{Status: status, Msg: "expected JSON response"}
	}

	var robot models.Robot
	if err := json.Unmarshal(body, &robot); err != nil {
		return models.Robot{}, &TransportError{Status: status, Err: fmt.Errorf("decode robot: %w", err)}
	}
	return robot, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	status, body, isJSON, err := c.do(req)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &TransportError{Status: status, Msg: errorMessage(body, isJSON)}
	}
	if !isJSON {
		return &TransportError{Status: status, Msg: "expected JSON response"}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Status: status, Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	return nil
}

func (c *Client) do(req *http.Request) (status int, body []byte, isJSON bool, err error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, false, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, false, &TransportError{Status: resp.StatusCode, Err: err}
	}
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return resp.StatusCode, body, mediaType == "application/json", nil
}

// errorMessage pulls msg, then error, out of a JSON error body.
func errorMessage(body []byte, isJSON bool) string {
	if !isJSON {
		return ""
	}
	var shape struct {
		Msg   string `json:"msg"`
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &shape) != nil {
		return ""
	}
	if shape.Msg != "" {
		return shape.Msg
	}
	return shape.Error
}

// Message renders err for a user-facing prompt.
func Message(err error) string {
	var te *TransportError
	if errors.As(err, &te) && te.Msg == "" && te.Err == nil {
		if text := http.StatusText(te.Status); text != "" {
			return fmt.Sprintf("%s (status %d)", text, te.Status)
		}
	}
	return err.Error()
}
