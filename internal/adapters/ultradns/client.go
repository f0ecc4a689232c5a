package ultradns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/udns-tools/udnscan/internal/domain"
	"github.com/udns-tools/udnscan/internal/ports"
)

// DefaultBaseURL is the production UltraDNS management API.
const DefaultBaseURL = "https://api.ultradns.com"

const maxResponseBytes = 1 << 20

// pageLimit is the page size used for every paginated listing.
const pageLimit = 1000

// Client talks to the UltraDNS management API. The zero value is not usable;
// BaseURL is required.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

var _ ports.Client = (*Client)(nil)

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Login performs the password-grant exchange against the authorization
// endpoint. A non-success status becomes a domain.AuthError carrying the
// status and body.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Session, error) {
	endpoint, err := c.endpoint("/authorization/token", nil)
	if err != nil {
		return "", err
	}

	values := url.Values{}
	values.Set("grant_type", "password")
	values.Set("username", username)
	values.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return "", fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if !successStatus(resp.StatusCode) {
		return "", &domain.AuthError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", errors.New("token response missing accessToken")
	}

	return domain.Session(payload.AccessToken), nil
}

// get issues an authenticated GET and returns the status with the full body.
// Status handling stays with the caller: the pool query treats 404 as empty
// and the subaccount listing gives 403 a dedicated message.
func (c *Client) get(ctx context.Context, session domain.Session, endpoint string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+string(session))

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) endpoint(path string, query url.Values) (string, error) {
	if c.BaseURL == "" {
		return "", errors.New("api base url is required")
	}

	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	resolved, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	if len(query) > 0 {
		resolved.RawQuery = query.Encode()
	}

	return resolved.String(), nil
}

func successStatus(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

func apiError(endpoint string, status int, body []byte) *domain.APIError {
	return &domain.APIError{
		Status:   status,
		Endpoint: endpoint,
		Body:     strings.TrimSpace(string(body)),
	}
}
