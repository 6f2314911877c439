package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/dmitrijs2005/resumeroast/internal/client/models"
)

// NormalizeBaseURL trims whitespace and trailing slashes so paths can be
// appended with a single '/'.
func NormalizeBaseURL(value string) string {
	return strings.TrimRight(strings.TrimSpace(value), "/")
}

// HTTPClient is the production Client. Reads go through a retrying transport,
// mutations through a non-retrying one.
type HTTPClient struct {
	baseURL string
	reads   *http.Client
	writes  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds an HTTPClient for the given base URL with the default
// transports. Pass options to tune retries/timeouts (tests use WithTimeout).
func NewHTTPClient(baseURL string, options ...TransportOption) *HTTPClient {
	return &HTTPClient{
		baseURL: NormalizeBaseURL(baseURL),
		reads:   NewHTTPTransport(options...),
		writes:  NewMutationTransport(options...),
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path, token, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *HTTPClient) do(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// statusError drains the body and builds a *StatusError. The backend reports
// failures as {"detail": ...} (FastAPI); anything else is kept verbatim.
func statusError(resp *http.Response) error {
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	detail := strings.TrimSpace(string(raw))
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if len(payload.Detail) > 0 {
			var s string
			if err := json.Unmarshal(payload.Detail, &s); err == nil {
				detail = s
			} else {
				detail = string(payload.Detail)
			}
		} else if payload.Message != "" {
			detail = payload.Message
		}
	}

	return &StatusError{Code: resp.StatusCode, Detail: detail}
}

func decode(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Login exchanges credentials for an access token via the form-encoded
// /auth/jwt/login endpoint.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/jwt/login", "",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}

	resp, err := c.do(c.writes, req)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := decode(resp, &body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("login response missing access token")
	}
	return body.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, r models.RegisterRequest) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/register", "",
		"application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}

	resp, err := c.do(c.writes, req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	resp.Body.Close()
	return nil
}

// CurrentUser performs the "who am I" probe. A 204 answer is surfaced as a
// *StatusError like any other unusable response; the session store decides
// which statuses deauthenticate.
func (c *HTTPClient) CurrentUser(ctx context.Context, token string) (*models.UserProfile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users/me", token, "", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(c.reads, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var user models.UserProfile
	if err := decode(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// listPosts fetches a post collection; 204 means an empty list.
func (c *HTTPClient) listPosts(ctx context.Context, path, token string) ([]models.Post, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, token, "", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(c.reads, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNoContent {
		resp.Body.Close()
		return []models.Post{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var posts []models.Post
	if err := decode(resp, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	return c.listPosts(ctx, "/posts/", "")
}

func (c *HTTPClient) Leaderboard(ctx context.Context) ([]models.Post, error) {
	return c.listPosts(ctx, "/posts/leaderboard", "")
}

func (c *HTTPClient) MyPosts(ctx context.Context, token string) ([]models.Post, error) {
	return c.listPosts(ctx, "/posts/me", token)
}

func (c *HTTPClient) Queue(ctx context.Context, token string) ([]models.Post, error) {
	return c.listPosts(ctx, "/posts/queue", token)
}

// Upload submits a resume file plus caption as multipart form data.
func (c *HTTPClient) Upload(ctx context.Context, token, fileName string, file io.Reader, caption string) (*models.Post, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if err := mw.WriteField("caption", caption); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/posts/upload", token, mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(c.writes, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var post models.Post
	if err := decode(resp, &post); err != nil {
		// Created but the body was not a post payload; the caller reloads anyway.
		return nil, nil
	}
	return &post, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, token, postID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/posts/"+postID, token, "", nil)
	if err != nil {
		return err
	}

	resp, err := c.do(c.writes, req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	resp.Body.Close()
	return nil
}

type rateQuery struct {
	Score int `url:"score"`
}

// Rate records a 1..5 score for a post.
func (c *HTTPClient) Rate(ctx context.Context, token, postID string, score int) error {
	values, err := query.Values(rateQuery{Score: score})
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost,
		"/posts/"+postID+"/rate?"+values.Encode(), token, "", nil)
	if err != nil {
		return err
	}

	resp, err := c.do(c.writes, req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	resp.Body.Close()
	return nil
}

func (c *HTTPClient) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/comments/"+postID, "", "", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(c.reads, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNoContent {
		resp.Body.Close()
		return []models.Comment{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var comments []models.Comment
	if err := decode(resp, &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

func (c *HTTPClient) AddComment(ctx context.Context, token string, comment models.NewComment) error {
	payload, err := json.Marshal(comment)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/comments/"+comment.PostID, token,
		"application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}

	resp, err := c.do(c.writes, req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	resp.Body.Close()
	return nil
}

func (c *HTTPClient) DeleteComment(ctx context.Context, token, commentID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/comments/"+commentID, token, "", nil)
	if err != nil {
		return err
	}

	resp, err := c.do(c.writes, req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	resp.Body.Close()
	return nil
}
