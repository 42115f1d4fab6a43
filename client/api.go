package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

// TaskPatch carries the fields of a partial update request; nil fields are
// omitted from the body.
type TaskPatch struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Priority  *string `json:"priority,omitempty"`
	DueDate   *string `json:"dueDate,omitempty"`
}

// User is the identity behind the active session.
type User struct {
	OwnerID string `json:"ownerId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// APIError is a non-success response from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// IsUnauthenticated reports whether err is a 401 from the service.
func IsUnauthenticated(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == fasthttp.StatusUnauthorized
}

// Client talks to the task service. It holds the session token the way a
// browser holds the session cookie and replays it on every request.
type Client struct {
	base    string
	http    *fasthttp.Client
	timeout time.Duration

	cookieName string
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		base:       baseURL,
		http:       &fasthttp.Client{},
		timeout:    10 * time.Second,
		cookieName: "session",
	}
}

// SetToken installs a previously saved session token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string {
	return c.token
}

// Login exchanges a provider ID token for a session, capturing the session
// cookie from the response.
func (c *Client) Login(idToken string) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	c.prepare(req, fasthttp.MethodPost, "/api/auth/google")
	body, err := json.Marshal(map[string]string{"idToken": idToken})
	if err != nil {
		return err
	}
	req.SetBody(body)

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return err
	}
	if err := checkStatus(resp); err != nil {
		return err
	}

	ck := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(ck)
	ck.SetKey(c.cookieName)
	if !resp.Header.Cookie(ck) {
		return fmt.Errorf("login response carried no session cookie")
	}
	c.token = string(ck.Value())
	return nil
}

// Session fetches the identity behind the current session.
func (c *Client) Session() (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if err := c.do(fasthttp.MethodGet, "/api/me", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Tasks fetches the full task list.
func (c *Client) Tasks() ([]Task, error) {
	var out []Task
	if err := c.do(fasthttp.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask persists a new task and returns the created record.
func (c *Client) CreateTask(text, priority, dueDate string) (*Task, error) {
	in := map[string]string{"text": text, "priority": priority, "dueDate": dueDate}
	var out Task
	if err := c.do(fasthttp.MethodPost, "/api/tasks", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask applies a partial update and returns the updated record.
func (c *Client) UpdateTask(id string, patch TaskPatch) (*Task, error) {
	var out Task
	if err := c.do(fasthttp.MethodPut, "/api/tasks/"+id, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(id string) error {
	return c.do(fasthttp.MethodDelete, "/api/tasks/"+id, nil, nil)
}

// Logout tells the service to clear the cookie and drops the local token.
func (c *Client) Logout() error {
	err := c.do(fasthttp.MethodPost, "/api/logout", nil, nil)
	c.token = ""
	return err
}

func (c *Client) do(method, path string, in, out interface{}) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	c.prepare(req, method, path)
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return err
		}
		req.SetBody(body)
	}

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return err
	}
	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		return json.Unmarshal(resp.Body(), out)
	}
	return nil
}

func (c *Client) prepare(req *fasthttp.Request, method, path string) {
	req.Header.SetMethod(method)
	req.SetRequestURI(c.base + path)
	req.Header.SetContentType("application/json")
	if c.token != "" {
		req.Header.SetCookie(c.cookieName, c.token)
	}
}

func checkStatus(resp *fasthttp.Response) error {
	status := resp.StatusCode()
	if status < 400 {
		return nil
	}
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(resp.Body(), &payload)
	return &APIError{Status: status, Message: payload.Error}
}
