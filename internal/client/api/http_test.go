package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/resumeroast/internal/client/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPClient(server.URL, WithMaxRetries(0))
}

func TestNormalizeBaseURL(t *testing.T) {
	require.Equal(t, "http://x", NormalizeBaseURL("  http://x/// "))
	require.Equal(t, "http://x", NormalizeBaseURL("http://x"))
	require.Equal(t, "", NormalizeBaseURL("   "))
}

func TestLoginSendsForm(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/jwt/login", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		require.Equal(t, "ann", r.PostForm.Get("username"))
		require.Equal(t, "s3cret", r.PostForm.Get("password"))

		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	})

	token, err := client.Login(context.Background(), "ann", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "tok-123", token)
}

func TestLoginBadCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "LOGIN_BAD_CREDENTIALS"})
	})

	_, err := client.Login(context.Background(), "ann", "nope")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadRequest, statusErr.Code)
	require.Equal(t, "LOGIN_BAD_CREDENTIALS", statusErr.Detail)
}

func TestLoginMissingToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	})

	_, err := client.Login(context.Background(), "ann", "s3cret")
	require.Error(t, err)
}

func TestRegisterPostsJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "student", req.ProfileType)
		require.Equal(t, "3", req.YearOfStudy)

		w.WriteHeader(http.StatusCreated)
	})

	err := client.Register(context.Background(), models.RegisterRequest{
		Email:       "ann@example.com",
		Password:    "s3cret",
		Username:    "ann",
		ProfileType: "student",
		YearOfStudy: "3",
	})
	require.NoError(t, err)
}

func TestCurrentUserSendsBearer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.UserProfile{Username: "ann"})
	})

	user, err := client.CurrentUser(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "ann", user.Username)
}

func TestCurrentUserNoContentIsStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := client.CurrentUser(context.Background(), "tok")
	require.Equal(t, 204, StatusCode(err))
}

func TestUnauthorizedMatchesSentinel(t *testing.T) {
	for _, code := range []int{401, 403} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		})

		_, err := client.CurrentUser(context.Background(), "tok")
		require.ErrorIs(t, err, ErrUnauthorized)
	}
}

func TestListPosts(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/posts/", r.URL.Path)
			require.Empty(t, r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode([]models.Post{{PostID: "p1"}})
		})

		posts, err := client.ListPosts(context.Background())
		require.NoError(t, err)
		require.Len(t, posts, 1)
	})

	t.Run("204 means empty", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		posts, err := client.ListPosts(context.Background())
		require.NoError(t, err)
		require.NotNil(t, posts)
		require.Empty(t, posts)
	})

	t.Run("null body means empty", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "null")
		})

		posts, err := client.ListPosts(context.Background())
		require.NoError(t, err)
		require.NotNil(t, posts)
		require.Empty(t, posts)
	})
}

func TestQueueSendsToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/posts/queue", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := client.Queue(context.Background(), "tok")
	require.NoError(t, err)
}

func TestRateSendsScoreQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/posts/p1/rate", r.URL.Path)
		require.Equal(t, "4", r.URL.Query().Get("score"))
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.Rate(context.Background(), "tok", "p1", 4))
}

func TestUploadMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/posts/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "cv.pdf", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, "pdf-bytes", string(content))
		require.Equal(t, "roast me", r.FormValue("caption"))

		json.NewEncoder(w).Encode(models.Post{PostID: "p1"})
	})

	post, err := client.Upload(context.Background(), "tok", "cv.pdf", strings.NewReader("pdf-bytes"), "roast me")
	require.NoError(t, err)
	require.Equal(t, "p1", post.PostID)
}

func TestDeletePost(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/posts/p1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeletePost(context.Background(), "tok", "p1"))
}

func TestListComments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/comments/p1", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Comment{{ID: "c1", Body: "hi"}})
	})

	comments, err := client.ListComments(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, "c1", comments[0].ID)
}

func TestAddCommentCarriesParent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/comments/p1", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "agreed", payload["body"])
		require.Equal(t, "c9", payload["parent_comment_id"])

		w.WriteHeader(http.StatusCreated)
	})

	parent := "c9"
	err := client.AddComment(context.Background(), "tok", models.NewComment{
		PostID:          "p1",
		Body:            "agreed",
		ParentCommentID: &parent,
	})
	require.NoError(t, err)
}

func TestDeleteComment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/comments/c1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.DeleteComment(context.Background(), "tok", "c1"))
}

func TestTransportFailureWrapsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewHTTPClient(server.URL, WithMaxRetries(0))

	_, err := client.ListPosts(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestStatusErrorDetailForms(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "fastapi string detail", body: `{"detail":"Not found"}`, want: "Not found"},
		{name: "structured detail kept raw", body: `{"detail":[{"msg":"bad"}]}`, want: `[{"msg":"bad"}]`},
		{name: "message field", body: `{"message":"nope"}`, want: "nope"},
		{name: "plain text", body: "server exploded", want: "server exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				io.WriteString(w, tt.body)
			})

			_, err := client.ListPosts(context.Background())
			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			require.Equal(t, tt.want, statusErr.Detail)
		})
	}
}

func TestStatusCodeHelper(t *testing.T) {
	err := &StatusError{Code: 500}
	require.False(t, errors.Is(err, ErrUnauthorized))
	require.Equal(t, 500, StatusCode(err))
	require.Zero(t, StatusCode(errors.New("other")))
}
