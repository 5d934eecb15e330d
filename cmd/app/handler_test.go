package main

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegisterUserHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name       string
		payload    any
		setup      func(t *testing.T)
		wantStatus int
		wantCode   string
		wantFields map[string]any
	}{
		{
			name: "valid request",
			payload: map[string]any{
				"username": "testuser",
				"email":    "testuser@example.com",
				"password": "Test_1234!",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "invalid email",
			payload: map[string]any{
				"username": "testuser",
				"email":    "test",
				"password": "Test_1234!",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_failed",
			wantFields: map[string]any{"email": "must be a valid email address"},
		},
		{
			name: "duplicate username",
			payload: map[string]any{
				"username": "testuser",
				"email":    "other@example.com",
				"password": "Test_1234!",
			},
			setup: func(t *testing.T) {
				_, err := db.Exec("INSERT INTO users (username, email, password) VALUES ($1, $2, $3)", "testuser", "testuser@example.com", []byte("hash"))
				assert.NoError(t, err)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_failed",
			wantFields: map[string]any{"username": "this username is already taken"},
		},
		{
			name:       "unknown field",
			payload:    map[string]any{"username": "testuser", "admin": true},
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(func() {
				_, err := db.Exec("DELETE FROM users")
				assert.NoError(t, err)
			})

			if tc.setup != nil {
				tc.setup(t)
			}

			status, env := ts.post(t, "/v1/users/register", "", tc.payload)
			assert.Equal(t, tc.wantStatus, status)

			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, errorCode(env))
			}
			if tc.wantFields != nil {
				assert.Equal(t, tc.wantFields, env["error"].(map[string]any)["fields"])
			}
			if status == http.StatusCreated {
				user := env["user"].(map[string]any)
				assert.Equal(t, "testuser", user["username"])
				assert.NotContains(t, user, "password")
			}
		})
	}
}

func TestLoginLogoutHandlers(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, token := registerAndLogin(t, ts, "alice")

	status, env := ts.post(t, "/v1/users/login", "", map[string]string{"username": "alice", "password": "Wrong_1234!"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "unauthenticated", errorCode(env))

	status, _ = ts.get(t, "/user_blogs/", token)
	assert.Equal(t, http.StatusOK, status)

	status, env = ts.post(t, "/v1/users/logout", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user logged out", env["message"])

	status, env = ts.get(t, "/user_blogs/", token)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "unauthenticated", errorCode(env))
}

func TestProtectedRoutesRequireAuthentication(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/user_blogs/"},
		{http.MethodPost, "/create_blog/"},
		{http.MethodPost, "/delete_blog/"},
		{http.MethodGet, "/see_blog/1"},
		{http.MethodPost, "/edit_blog/1"},
		{http.MethodGet, "/recent_activity/"},
		{http.MethodPost, "/add_comment/1"},
		{http.MethodPost, "/add_response/1"},
		{http.MethodPost, "/v1/users/logout"},
	}

	for _, tokenCase := range []struct {
		name  string
		token string
	}{
		{name: "anonymous", token: ""},
		{name: "invalid token", token: "invalid-token"},
	} {
		for _, route := range routes {
			t.Run(fmt.Sprintf("%s %s %s", tokenCase.name, route.method, route.path), func(t *testing.T) {
				status, header, body := ts.do(t, route.method, route.path, tokenCase.token, map[string]any{})
				assert.Equal(t, http.StatusUnauthorized, status)
				assert.Equal(t, "Bearer", header.Get("WWW-Authenticate"))
				assert.Equal(t, "unauthenticated", errorCode(decodeEnvelope(t, body)))
			})
		}
	}
}

func TestBlogLifecycle(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	aliceID, alice := registerAndLogin(t, ts, "alice")
	_, bob := registerAndLogin(t, ts, "bob")

	status, blogs, _ := ts.blogs(t, http.MethodPost, "/create_blog/", alice, map[string]string{"name": "Hello", "content": "World"})
	assert.Equal(t, http.StatusCreated, status)
	assert.Len(t, blogs, 1)

	blog := blogs[0]
	assert.Equal(t, "Hello", blog.Name)
	assert.Equal(t, "World", blog.Content)
	assert.Equal(t, aliceID, blog.AuthorID)
	assert.True(t, blog.CreatedDate.Equal(blog.ModifiedDate))

	status, env := ts.post(t, "/delete_blog/", bob, map[string]int{"id": blog.ID})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", errorCode(env))

	status, blogs, _ = ts.blogs(t, http.MethodGet, fmt.Sprintf("/see_blog/%d", blog.ID), alice, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, blog.ID, blogs[0].ID)

	status, env = ts.post(t, "/delete_blog/", alice, map[string]int{"id": blog.ID})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "blog successfully deleted", env["message"])

	status, _, env = ts.blogs(t, http.MethodGet, fmt.Sprintf("/see_blog/%d", blog.ID), alice, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", errorCode(env))
}

func TestCreateBlogHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, alice := registerAndLogin(t, ts, "alice")

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
		wantCode   string
		wantFields map[string]any
	}{
		{
			name:       "valid",
			payload:    map[string]string{"name": "Hello", "content": "World"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing fields",
			payload:    map[string]string{},
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_failed",
			wantFields: map[string]any{"name": "must be provided", "content": "must be provided"},
		},
		{
			name:       "wrong type",
			payload:    map[string]any{"name": 1, "content": "World"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(func() {
				_, err := db.Exec("DELETE FROM blogs")
				assert.NoError(t, err)
			})

			status, _, env := ts.blogs(t, http.MethodPost, "/create_blog/", alice, tc.payload)
			assert.Equal(t, tc.wantStatus, status)

			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, errorCode(env))
			}
			if tc.wantFields != nil {
				assert.Equal(t, tc.wantFields, env["error"].(map[string]any)["fields"])
			}
		})
	}
}

func TestSeeBlogHandlerInvalidID(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, alice := registerAndLogin(t, ts, "alice")

	for _, path := range []string{"/see_blog/abc", "/see_blog/0", "/see_blog/999999"} {
		t.Run(path, func(t *testing.T) {
			status, env := ts.get(t, path, alice)
			assert.Equal(t, http.StatusNotFound, status)
			assert.Equal(t, "not_found", errorCode(env))
		})
	}
}

func TestEditBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, alice := registerAndLogin(t, ts, "alice")
	_, bob := registerAndLogin(t, ts, "bob")

	_, blogs, _ := ts.blogs(t, http.MethodPost, "/create_blog/", alice, map[string]string{"name": "Hello", "content": "World"})
	original := blogs[0]
	path := fmt.Sprintf("/edit_blog/%d", original.ID)

	status, blogs, _ := ts.blogs(t, http.MethodPost, path, alice, map[string]string{"name": "Renamed"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Renamed", blogs[0].Name)
	assert.Equal(t, "World", blogs[0].Content)
	assert.True(t, blogs[0].ModifiedDate.After(original.ModifiedDate))

	status, blogs, _ = ts.blogs(t, http.MethodPost, path, alice, map[string]string{"content": ""})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Renamed", blogs[0].Name)
	assert.Equal(t, "", blogs[0].Content)

	status, _, env := ts.blogs(t, http.MethodPost, path, alice, map[string]string{"name": " "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_failed", errorCode(env))

	status, _, env = ts.blogs(t, http.MethodPost, path, bob, map[string]string{"name": "Stolen"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", errorCode(env))

	status, _, env = ts.blogs(t, http.MethodPost, "/edit_blog/999999", alice, map[string]string{"name": "Nope"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", errorCode(env))
}

func TestUserBlogsHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, alice := registerAndLogin(t, ts, "alice")
	_, bob := registerAndLogin(t, ts, "bob")

	status, env := ts.get(t, "/user_blogs/", alice)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", env["author"])
	assert.Equal(t, []any{}, env["blogs"])
	assert.Equal(t, []any{}, env["top_liked_blogs"])

	_, blogs, _ := ts.blogs(t, http.MethodPost, "/create_blog/", alice, map[string]string{"name": "First", "content": "one"})
	first := blogs[0]
	_, blogs, _ = ts.blogs(t, http.MethodPost, "/create_blog/", alice, map[string]string{"name": "Second", "content": "two"})
	second := blogs[0]

	status, _ = ts.post(t, fmt.Sprintf("/add_comment/%d", first.ID), bob, map[string]string{"comment_text": "nice"})
	assert.Equal(t, http.StatusCreated, status)
	status, _ = ts.post(t, fmt.Sprintf("/add_response/%d", second.ID), bob, map[string]string{"reaction": "like"})
	assert.Equal(t, http.StatusOK, status)
	status, _ = ts.post(t, fmt.Sprintf("/add_response/%d", first.ID), alice, map[string]string{"reaction": "dislike"})
	assert.Equal(t, http.StatusOK, status)

	// A like older than the reaction window does not rank.
	_, err := db.Exec("UPDATE responses SET response_date = $1 WHERE blog_id = $2", time.Now().Add(-4*24*time.Hour), second.ID)
	assert.NoError(t, err)

	status, env = ts.get(t, "/user_blogs/", alice)
	assert.Equal(t, http.StatusOK, status)

	listed := env["blogs"].([]any)
	assert.Len(t, listed, 2)
	newest := listed[0].(map[string]any)
	assert.Equal(t, "Second", newest["name"])
	assert.Equal(t, float64(1), newest["likes_count"])
	oldest := listed[1].(map[string]any)
	assert.Equal(t, float64(1), oldest["comments_count"])
	assert.Equal(t, float64(1), oldest["dislikes_count"])

	topCommented := env["top_commented_blogs"].([]any)
	assert.Equal(t, "First", topCommented[0].(map[string]any)["name"])
	assert.Equal(t, float64(1), topCommented[0].(map[string]any)["count"])

	assert.Equal(t, []any{}, env["top_liked_blogs"])

	topDisliked := env["top_disliked_blogs"].([]any)
	assert.Len(t, topDisliked, 1)
	assert.Equal(t, float64(first.ID), topDisliked[0].(map[string]any)["id"])
}

func TestRecentActivityHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	aliceID, alice := registerAndLogin(t, ts, "alice")
	carolID, carol := registerAndLogin(t, ts, "carol")
	_, bob := registerAndLogin(t, ts, "bob")

	_, blogs, _ := ts.blogs(t, http.MethodPost, "/create_blog/", alice, map[string]string{"name": "Alice", "content": "a"})
	aliceBlog := blogs[0]
	_, blogs, _ = ts.blogs(t, http.MethodPost, "/create_blog/", carol, map[string]string{"name": "Carol", "content": "c"})
	carolBlog := blogs[0]

	ts.post(t, fmt.Sprintf("/add_comment/%d", aliceBlog.ID), bob, map[string]string{"comment_text": "on alice"})
	ts.post(t, fmt.Sprintf("/add_comment/%d", carolBlog.ID), bob, map[string]string{"comment_text": "on carol"})
	ts.post(t, fmt.Sprintf("/add_response/%d", carolBlog.ID), bob, map[string]string{"reaction": "like"})

	status, env := ts.get(t, "/recent_activity/", bob)
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, env, "my_comment_history_for_author")
	assert.Len(t, env["my_comment_history"].([]any), 2)

	liked := env["my_recent_liked_blogs"].([]any)
	assert.Len(t, liked, 1)
	assert.Equal(t, float64(carolBlog.ID), liked[0].(map[string]any)["id"])

	status, env = ts.get(t, fmt.Sprintf("/recent_activity/?author_id=%d", aliceID), bob)
	assert.Equal(t, http.StatusOK, status)
	forAuthor := env["my_comment_history_for_author"].([]any)
	assert.Len(t, forAuthor, 1)
	assert.Equal(t, "on alice", forAuthor[0].(map[string]any)["comment_text"])

	status, env = ts.get(t, fmt.Sprintf("/recent_activity/?author_id=%d", carolID), alice)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, env["my_comment_history_for_author"])

	status, env = ts.get(t, "/recent_activity/?author_id=abc", bob)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_failed", errorCode(env))

	status, env = ts.get(t, "/recent_activity/?author_id=999999", bob)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", errorCode(env))
}

func TestAddResponseHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, alice := registerAndLogin(t, ts, "alice")
	_, bob := registerAndLogin(t, ts, "bob")

	_, blogs, _ := ts.blogs(t, http.MethodPost, "/create_blog/", alice, map[string]string{"name": "Hello", "content": "World"})
	path := fmt.Sprintf("/add_response/%d", blogs[0].ID)

	status, env := ts.post(t, path, bob, map[string]string{"reaction": "love"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_failed", errorCode(env))

	status, env = ts.post(t, path, bob, map[string]string{"reaction": "like"})
	assert.Equal(t, http.StatusOK, status)
	response := env["response"].(map[string]any)
	assert.Equal(t, true, response["like"])
	assert.Equal(t, false, response["dislike"])

	status, env = ts.post(t, path, bob, map[string]string{"reaction": "dislike"})
	assert.Equal(t, http.StatusOK, status)
	response = env["response"].(map[string]any)
	assert.Equal(t, false, response["like"])
	assert.Equal(t, true, response["dislike"])

	var count int
	err := db.QueryRow("SELECT count(*) FROM responses WHERE blog_id = $1", blogs[0].ID).Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	status, env = ts.post(t, "/add_response/999999", bob, map[string]string{"reaction": "like"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", errorCode(env))
}

func TestAddCommentHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, alice := registerAndLogin(t, ts, "alice")
	bobID, bob := registerAndLogin(t, ts, "bob")

	_, blogs, _ := ts.blogs(t, http.MethodPost, "/create_blog/", alice, map[string]string{"name": "Hello", "content": "World"})
	path := fmt.Sprintf("/add_comment/%d", blogs[0].ID)

	status, env := ts.post(t, path, bob, map[string]string{"comment_text": "Tom & Jerry <b>a<b</b>"})
	assert.Equal(t, http.StatusCreated, status)
	comment := env["comment"].(map[string]any)
	assert.Equal(t, "Tom & Jerry <b>a<b</b>", comment["comment_text"])
	assert.Equal(t, float64(bobID), comment["user"])
	assert.Equal(t, float64(blogs[0].ID), comment["blog"])

	status, env = ts.post(t, path, bob, map[string]string{"comment_text": ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_failed", errorCode(env))

	status, env = ts.post(t, "/add_comment/999999", bob, map[string]string{"comment_text": "hi"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", errorCode(env))
}

func TestHealthCheckHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, env := ts.get(t, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", env["status"])
	assert.Equal(t, map[string]any{"environment": "testing", "version": "1.0.0"}, env["system_info"])
}
