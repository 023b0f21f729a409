// Package prolific implements a thin client for the Prolific REST API.
// Each method issues exactly one HTTP request and returns the JSON body
// unmodified; non-2xx responses and transport failures are reported as
// a single *Error kind. There are no retries and no local state.
package prolific

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/prolific-tools/prolific-mcp/config"
)

var logger = xlog.NewPackageLogger("github.com/prolific-tools/prolific-mcp", "prolific")

const requestTimeout = 30 * time.Second

// Client issues authenticated requests against the Prolific API.
// It is safe for concurrent use; all fields are set at construction.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewClient creates a client from validated configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		authHeader: cfg.AuthHeader(),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

func (c *Client) request(ctx context.Context, method, endpoint string, body any, query url.Values) (json.RawMessage, error) {
	u := c.baseURL + "/" + strings.TrimPrefix(endpoint, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal request body")
		}
		reqBody = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authHeader)

	logger.ContextKV(ctx, xlog.DEBUG, "method", method, "url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: "Request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: "Failed to read response: " + err.Error(), StatusCode: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.ContextKV(ctx, xlog.ERROR,
			"method", method,
			"url", u,
			"status", resp.StatusCode,
		)
		return nil, &Error{
			Message:    "Prolific API error: " + method + " " + endpoint + " returned " + strconv.Itoa(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Body:       json.RawMessage(respBody),
		}
	}

	if len(respBody) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(respBody), nil
}

// CreateStudy creates a new study from the given configuration.
func (c *Client) CreateStudy(ctx context.Context, studyConfig any) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPost, "studies/", studyConfig, nil)
}

// GetStudy returns study details by ID.
func (c *Client) GetStudy(ctx context.Context, studyID string) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "studies/"+studyID+"/", nil, nil)
}

// UpdateStudy patches a study; the field merge is performed remotely.
func (c *Client) UpdateStudy(ctx context.Context, studyID string, updates map[string]any) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPatch, "studies/"+studyID+"/", updates, nil)
}

// LaunchStudy starts participant recruitment. The UNPUBLISHED to ACTIVE
// transition is enforced by the remote service.
func (c *Client) LaunchStudy(ctx context.Context, studyID string) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPost, "studies/"+studyID+"/transition/", map[string]any{"action": "PUBLISH"}, nil)
}

// GetSubmissions returns all submissions for a study.
func (c *Client) GetSubmissions(ctx context.Context, studyID string) (json.RawMessage, error) {
	resp, err := c.request(ctx, http.MethodGet, "studies/"+studyID+"/submissions/", nil, nil)
	if err != nil {
		return nil, err
	}
	return unwrapResults(resp)
}

// GetStudyStatus returns the status projection of a study:
// id, status, places and completion rate.
func (c *Client) GetStudyStatus(ctx context.Context, studyID string) (json.RawMessage, error) {
	resp, err := c.GetStudy(ctx, studyID)
	if err != nil {
		return nil, err
	}

	var study map[string]any
	if err := json.Unmarshal(resp, &study); err != nil {
		return nil, errors.Wrap(err, "failed to parse study response")
	}

	status := map[string]any{
		"id":                     study["id"],
		"status":                 study["status"],
		"total_available_places": study["total_available_places"],
		"places_taken":           study["places_taken"],
		"completion_rate":        study["completion_rate"],
	}
	bs, err := json.Marshal(status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal study status")
	}
	return json.RawMessage(bs), nil
}

// ListStudies lists studies, optionally capped to limit results.
func (c *Client) ListStudies(ctx context.Context, limit int) (json.RawMessage, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}
	resp, err := c.request(ctx, http.MethodGet, "studies/", nil, query)
	if err != nil {
		return nil, err
	}
	return unwrapResults(resp)
}

// CreateTestParticipant creates a test participant account for validating
// studies without consuming credits. The email must not be registered
// with Prolific already.
func (c *Client) CreateTestParticipant(ctx context.Context, email string) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPost, "researchers/participants/", map[string]any{"email": email}, nil)
}

// LaunchTestStudy launches a draft study in test mode. Requires at least
// one test participant and the feature enabled for the workspace.
func (c *Client) LaunchTestStudy(ctx context.Context, studyID string) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPost, "studies/"+studyID+"/test-study", nil, nil)
}

// DeleteStudy deletes a study. Only draft studies can be deleted;
// the endpoint returns an empty body on success.
func (c *Client) DeleteStudy(ctx context.Context, studyID string) error {
	_, err := c.request(ctx, http.MethodDelete, "studies/"+studyID+"/", nil, nil)
	return err
}

// unwrapResults extracts the "results" array from list responses,
// defaulting to an empty list when the key is absent.
func unwrapResults(resp json.RawMessage) (json.RawMessage, error) {
	var wrapper struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(resp, &wrapper); err != nil {
		return nil, errors.Wrap(err, "failed to parse list response")
	}
	if len(wrapper.Results) == 0 {
		return json.RawMessage("[]"), nil
	}
	return wrapper.Results, nil
}
