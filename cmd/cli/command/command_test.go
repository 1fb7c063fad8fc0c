package command

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cineforo/cmd/cli/authentication"
	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/validation"
	feed "cineforo/internal/microservices/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func run(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--api", server.URL}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func fakeAPI(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginStoresSession(t *testing.T) {
	keyring.MockInit()
	server := fakeAPI(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, dto.AuthResponse{
				AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900,
				User: &dto.UserResponse{ID: "u1", Name: "Juan", Email: "juan@example.com", Role: "user"},
			})
		},
	})

	out, err := run(t, server, "auth", "login", "-e", "juan@example.com", "-p", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Juan!")

	email, err := authentication.Active()
	require.NoError(t, err)
	creds, err := authentication.GetTokens(email)
	require.NoError(t, err)
	assert.Equal(t, "access", creds.AccessToken)
	assert.Equal(t, "u1", creds.UserID)
}

func TestRegisterValidatesLocally(t *testing.T) {
	keyring.MockInit()
	server := fakeAPI(t, map[string]http.HandlerFunc{})

	_, err := run(t, server, "auth", "register",
		"-n", "Juan", "-e", "juan@example.com", "-p", "secret1", "--confirm", "secret2", "-g", "Drama")

	var vErr *validation.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password_confirmation", vErr.Field)
}

func TestCommandsNeedSession(t *testing.T) {
	keyring.MockInit()
	server := fakeAPI(t, map[string]http.HandlerFunc{})

	_, err := run(t, server, "favorite", "count")
	assert.ErrorIs(t, err, authentication.ErrNoSession)
}

func TestExpiredTokenIsRefreshed(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, authentication.StoreTokens("juan@example.com", &authentication.StoredCredentials{
		AccessToken: "old", RefreshToken: "r1", Email: "juan@example.com",
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	}))
	require.NoError(t, authentication.SetActive("juan@example.com"))

	server := fakeAPI(t, map[string]http.HandlerFunc{
		"POST /api/auth/refresh": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, dto.AuthResponse{AccessToken: "new", RefreshToken: "r2", ExpiresIn: 900})
		},
		"GET /api/favorites/count": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer new", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, dto.CountResponse{Count: 4})
		},
	})

	out, err := run(t, server, "favorite", "count")
	require.NoError(t, err)
	assert.Contains(t, out, "4 favourite movies")

	creds, err := authentication.GetTokens("juan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "r2", creds.RefreshToken)
}

func TestForumLikeRendersOptimistically(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, authentication.StoreTokens("juan@example.com", &authentication.StoredCredentials{
		AccessToken: "tok", RefreshToken: "r1", Email: "juan@example.com",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}))
	require.NoError(t, authentication.SetActive("juan@example.com"))

	const topicID = "22222222-2222-2222-2222-222222222222"
	server := fakeAPI(t, map[string]http.HandlerFunc{
		"GET /api/topics/" + topicID + "/like": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, dto.LikeResponse{Liked: false, Likes: 2})
		},
		"POST /api/topics/" + topicID + "/like": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, dto.LikeResponse{Liked: true, Likes: 3})
		},
	})

	out, err := run(t, server, "forum", "like", topicID)
	require.NoError(t, err)
	assert.Contains(t, out, "… 👍 3*")
	assert.Contains(t, out, "✓ 👍 3*")
}

func TestPrintEvent(t *testing.T) {
	var out bytes.Buffer
	ev, err := feed.NewEvent(feed.TypeCommentAdded, "t1", dto.CommentResponse{AuthorName: "Ana", Content: "Loved it"})
	require.NoError(t, err)

	printEvent(&out, ev)
	printEvent(&out, feed.NewSystemEvent("t1", "Watching topic"))

	assert.Contains(t, out.String(), "Ana: Loved it")
	assert.Contains(t, out.String(), "🔔 Watching topic")
}
