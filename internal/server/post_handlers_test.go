package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, s *Server, token, text string) uint {
	t.Helper()

	resp, body := doRequest(t, s, http.MethodPost, "/api/posts/", map[string]string{
		"text": text,
		"name": "Poster",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id, ok := body["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

func TestCreatePost(t *testing.T) {
	s := newTestServer(t)
	token, userID := registerAndLogin(t, s, "Alice", "alice@example.com")

	resp, body := doRequest(t, s, http.MethodPost, "/api/posts/", map[string]string{
		"text":   "Hello from the test suite!",
		"name":   "Alice",
		"avatar": "https://example.com/alice.png",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello from the test suite!", body["text"])
	assert.Equal(t, float64(userID), body["user_id"])
	assert.Equal(t, "Alice", body["name"])

	t.Run("author fields are copied from the body", func(t *testing.T) {
		// The display name is whatever the client sent at creation time, not
		// a lookup against the account record.
		resp, body := doRequest(t, s, http.MethodPost, "/api/posts/", map[string]string{
			"text":   "Posting under a display name of my choosing",
			"name":   "Alice the Author",
			"avatar": "https://example.com/pen-name.png",
		}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Alice the Author", body["name"])
		assert.Equal(t, "https://example.com/pen-name.png", body["avatar"])

		id := body["id"].(float64)
		resp, body = doRequest(t, s, http.MethodGet, fmt.Sprintf("/api/posts/%d", int(id)), nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Alice the Author", body["name"])
	})

	t.Run("text length is enforced", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodPost, "/api/posts/", map[string]string{
			"text": "too short",
		}, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Post must be between 10 and 300 characters", body["text"])
	})

	t.Run("requires auth", func(t *testing.T) {
		resp, _ := doRequest(t, s, http.MethodPost, "/api/posts/", map[string]string{
			"text": "Hello from the test suite!",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestListAndGetPosts(t *testing.T) {
	s := newTestServer(t)
	token, _ := registerAndLogin(t, s, "Alice", "alice@example.com")

	first := createPost(t, s, token, "The very first post in the feed")
	createPost(t, s, token, "A second post, which should come first")

	resp, posts := doRequestSlice(t, s, http.MethodGet, "/api/posts/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, posts, 2)

	resp, body := doRequest(t, s, http.MethodGet, fmt.Sprintf("/api/posts/%d", first), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "The very first post in the feed", body["text"])

	resp, body = doRequest(t, s, http.MethodGet, "/api/posts/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Post not found", body["message"])
}

func TestDeletePost(t *testing.T) {
	s := newTestServer(t)
	aliceToken, _ := registerAndLogin(t, s, "Alice", "alice@example.com")
	bobToken, _ := registerAndLogin(t, s, "Bob", "bob@example.com")

	postID := createPost(t, s, aliceToken, "Only Alice may remove this post")

	t.Run("non-owner is rejected", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), nil, bobToken)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "User not authorized", body["authorization"])
	})

	t.Run("owner deletes", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), nil, aliceToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["success"])

		resp, _ = doRequest(t, s, http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unknown post", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodDelete, "/api/posts/9999", nil, aliceToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Post not found", body["message"])
	})
}

func TestLikeAndUnlike(t *testing.T) {
	s := newTestServer(t)
	aliceToken, _ := registerAndLogin(t, s, "Alice", "alice@example.com")
	bobToken, _ := registerAndLogin(t, s, "Bob", "bob@example.com")

	postID := createPost(t, s, aliceToken, "A post that will collect likes")

	resp, body := doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/posts/like/%d", postID), nil, aliceToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["likes"].([]any), 1)

	t.Run("liking twice is rejected", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/posts/like/%d", postID), nil, aliceToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "User already liked this post", body["message"])
	})

	t.Run("each user likes at most once", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/posts/like/%d", postID), nil, bobToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["likes"].([]any), 2)
	})

	t.Run("unlike removes only the caller's like", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/posts/unlike/%d", postID), nil, aliceToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		likes := body["likes"].([]any)
		require.Len(t, likes, 1)
		// Bob's like survives.
		remaining := likes[0].(map[string]any)
		assert.NotEqual(t, float64(0), remaining["user_id"])
	})

	t.Run("unliking without a like is rejected", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/posts/unlike/%d", postID), nil, aliceToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "User has not liked this post", body["message"])
	})
}

func TestComments(t *testing.T) {
	s := newTestServer(t)
	aliceToken, _ := registerAndLogin(t, s, "Alice", "alice@example.com")
	bobToken, _ := registerAndLogin(t, s, "Bob", "bob@example.com")

	postID := createPost(t, s, aliceToken, "A post that invites discussion")

	resp, body := doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/posts/comment/%d", postID), map[string]string{
		"text": "First! What a great post.",
		"name": "Bob",
	}, bobToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	comments := body["comments"].([]any)
	require.Len(t, comments, 1)
	assert.Equal(t, "Bob", comments[0].(map[string]any)["name"])
	commentID := comments[0].(map[string]any)["id"].(float64)

	t.Run("comment text is validated", func(t *testing.T) {
		resp, _ := doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/posts/comment/%d", postID), map[string]string{
			"text": "short",
		}, bobToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("remove unknown comment", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodDelete, fmt.Sprintf("/api/posts/comment/%d/9999", postID), nil, aliceToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Comment does not exist", body["message"])
	})

	t.Run("remove comment by id", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodDelete,
			fmt.Sprintf("/api/posts/comment/%d/%d", postID, int(commentID)), nil, aliceToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, body["comments"])
	})
}
