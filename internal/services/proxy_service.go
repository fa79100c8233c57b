package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// allowedActions maps proxy paths to the upstream action names.
var allowedActions = map[string]string{
	"register":    "register",
	"login":       "login",
	"users":       "users",
	"me":          "me",
	"members":     "members",
	"delete-user": "deleteUser",
}

// paths whose POST bodies get the action injected into the JSON itself
var bodyActionPaths = map[string]bool{
	"register":    true,
	"login":       true,
	"delete-user": true,
}

type ProxyService interface {
	Forward(method, path string, query url.Values, authorization string, body []byte) (int, []byte, error)
}

type proxyService struct {
	baseURL string
	client  *http.Client
}

func NewProxyService(baseURL string, timeout time.Duration) ProxyService {
	return &proxyService{
		baseURL: strings.TrimRight(baseURL, "?&"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Forward relays a request to the scripted upstream. The upstream reports
// failures in the response body, not the HTTP status, so the returned status
// is derived from the body: {"error":"Unauthorized"} and {"message":"Admin only"}
// become 401, any other error becomes 400.
func (s *proxyService) Forward(method, path string, query url.Values, authorization string, body []byte) (int, []byte, error) {
	if s.baseURL == "" || strings.Contains(s.baseURL, "YOUR_SCRIPT_ID") {
		return 0, nil, ErrNotConfigured
	}
	action, ok := allowedActions[path]
	if !ok {
		return 0, nil, ErrInvalidProxyPath
	}

	var req *http.Request
	var err error
	if method == http.MethodPost {
		payload, perr := injectAction(path, action, body)
		if perr != nil {
			return 0, nil, perr
		}
		target := s.baseURL + sep(s.baseURL) + "action=" + url.QueryEscape(action)
		req, err = http.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	} else {
		params := url.Values{}
		for k, vs := range query {
			if k == "path" {
				continue
			}
			params[k] = vs
		}
		// GET sends the raw path as the action; only POST uses the
		// mapped name (deleteUser)
		params.Set("action", path)
		target := s.baseURL + sep(s.baseURL) + params.Encode()
		req, err = http.NewRequest(http.MethodGet, target, nil)
	}
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, ErrUpstreamDown
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, ErrUpstreamDown
	}
	return statusFromBody(raw), raw, nil
}

// injectAction parses the POST body and, for the auth actions, sets the
// action field exactly once while leaving every other field untouched.
func injectAction(path, action string, body []byte) ([]byte, error) {
	trimmed := strings.TrimSpace(string(body))
	var decoded map[string]interface{}
	if trimmed != "" && trimmed != "null" {
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, ErrInvalidProxyBody
		}
	}
	if decoded == nil {
		decoded = map[string]interface{}{}
	}
	if bodyActionPaths[path] {
		decoded["action"] = action
	}
	return json.Marshal(decoded)
}

func statusFromBody(raw []byte) int {
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return http.StatusOK
	}
	errVal, hasErr := decoded["error"]
	if !hasErr {
		return http.StatusOK
	}
	if errVal == "Unauthorized" {
		return http.StatusUnauthorized
	}
	if msg, ok := decoded["message"]; ok && msg == "Admin only" {
		return http.StatusUnauthorized
	}
	return http.StatusBadRequest
}

func sep(base string) string {
	if strings.Contains(base, "?") {
		return "&"
	}
	return "?"
}
