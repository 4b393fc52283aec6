package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanscolte/twitter/internal/auth"
	"github.com/sanscolte/twitter/internal/handler"
	"github.com/sanscolte/twitter/internal/repository"
)

func newTestServer(t *testing.T) (*httptest.Server, *repository.MockStore) {
	t.Helper()

	store := repository.NewMock()
	h := handler.New(store, zap.NewNop())

	r := chi.NewRouter()
	r.Use(auth.Gate(store, zap.NewNop()))
	r.Mount("/api", h.Routes())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, apiKey string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, body)
	require.NoError(t, err)
	if apiKey != "" {
		req.Header.Set(auth.HeaderAPIKey, apiKey)
	}
	if body != nil && method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// uploadMedia posts a multipart file with an explicit per-part content type,
// which is what the upload handler inspects.
func uploadMedia(t *testing.T, srv *httptest.Server, apiKey, filename, contentType string, body []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	partHeader.Set("Content-Type", contentType)
	part, err := mw.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/medias", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if apiKey != "" {
		req.Header.Set(auth.HeaderAPIKey, apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func createTweet(t *testing.T, srv *httptest.Server, apiKey, content string, mediaIDs []int64) int64 {
	t.Helper()

	payload := map[string]any{"tweet_data": content}
	if mediaIDs != nil {
		payload["tweet_media_ids"] = mediaIDs
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	resp := doRequest(t, srv, http.MethodPost, "/api/tweets", apiKey, bytes.NewReader(raw))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["result"])
	return int64(body["tweet_id"].(float64))
}

func TestMediaUpload(t *testing.T) {
	srv, store := newTestServer(t)
	store.AddUser("test", "Tony")

	resp := uploadMedia(t, srv, "test", "pic.png", "image/png", []byte("png-bytes"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["result"])
	mediaID := int64(body["media_id"].(float64))

	// uploaded bytes come back under the stored content type
	get, err := http.Get(fmt.Sprintf("%s/api/medias/%d", srv.URL, mediaID))
	require.NoError(t, err)
	defer get.Body.Close()
	require.Equal(t, http.StatusOK, get.StatusCode)
	assert.Equal(t, "image/png", get.Header.Get("Content-Type"))
	raw, err := io.ReadAll(get.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), raw)
}

func TestMediaUploadRejectsContentType(t *testing.T) {
	srv, store := newTestServer(t)
	store.AddUser("test", "Tony")

	resp := uploadMedia(t, srv, "test", "notes.txt", "text/plain", []byte("hi"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Media validation failed", body["detail"])
}

func TestMediaUploadRequiresKey(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := uploadMedia(t, srv, "", "pic.png", "image/png", []byte("png-bytes"))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMediaNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/medias/42")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Media not found", body["detail"])
}

func TestCreateTweetRequiresKey(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, srv, http.MethodPost, "/api/tweets", "", strings.NewReader(`{"tweet_data":"hello"}`))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateTweetInvalidKey(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, srv, http.MethodPost, "/api/tweets", "bogus", strings.NewReader(`{"tweet_data":"hello"}`))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid API Key", body["detail"])
}

func TestCreateTweetValidation(t *testing.T) {
	srv, store := newTestServer(t)
	store.AddUser("test", "Tony")

	resp := doRequest(t, srv, http.MethodPost, "/api/tweets", "test", strings.NewReader(`{}`))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Tweet validation failed", body["detail"])
}

func TestLikeSequence(t *testing.T) {
	srv, store := newTestServer(t)
	store.AddUser("test", "Tony")
	store.AddUser("test2", "Mike")

	tweetID := createTweet(t, srv, "test", "hello", nil)
	path := fmt.Sprintf("/api/tweets/%d/likes", tweetID)

	resp := doRequest(t, srv, http.MethodPost, path, "test2", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, srv, http.MethodPost, path, "test2", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Tweet you can like not found", body["detail"])

	resp = doRequest(t, srv, http.MethodDelete, path, "test2", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, srv, http.MethodDelete, path, "test2", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "Tweet's like not found", body["detail"])
}

func TestDeleteTweetOwnership(t *testing.T) {
	srv, store := newTestServer(t)
	store.AddUser("test", "Tony")
	store.AddUser("test2", "Mike")

	tweetID := createTweet(t, srv, "test", "hello", nil)
	path := fmt.Sprintf("/api/tweets/%d", tweetID)

	resp := doRequest(t, srv, http.MethodDelete, path, "test2", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Tweet you can delete not found", body["detail"])

	resp = doRequest(t, srv, http.MethodDelete, path, "test", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, true, body["result"])

	// gone for good
	resp = doRequest(t, srv, http.MethodDelete, path, "test", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestFollowSequence(t *testing.T) {
	srv, store := newTestServer(t)
	store.AddUser("test", "Tony")
	mike := store.AddUser("test2", "Mike")

	path := fmt.Sprintf("/api/users/%d/follow", mike.ID)

	resp := doRequest(t, srv, http.MethodPost, path, "test", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, srv, http.MethodPost, path, "test", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "User you can subscribe not found", body["detail"])

	resp = doRequest(t, srv, http.MethodDelete, path, "test", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, srv, http.MethodDelete, path, "test", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "You were not subscribed to this user", body["detail"])
}

func TestFollowUnknownTarget(t *testing.T) {
	srv, store := newTestServer(t)
	store.AddUser("test", "Tony")

	resp := doRequest(t, srv, http.MethodPost, "/api/users/999/follow", "test", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestFeedEmpty(t *testing.T) {
	srv, store := newTestServer(t)
	store.AddUser("test", "Tony")

	resp := doRequest(t, srv, http.MethodGet, "/api/tweets", "test", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["result"])
	assert.Equal(t, "404", body["error_type"])
	assert.Equal(t, "There are no tweets yet", body["error_message"])
}

func TestFeedAnonymous(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/tweets", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["result"])
}

func TestFeedRanking(t *testing.T) {
	srv, store := newTestServer(t)
	store.AddUser("test", "Tony")
	store.AddUser("test2", "Mike")
	store.AddUser("test3", "John")

	first := createTweet(t, srv, "test", "first", nil)
	second := createTweet(t, srv, "test", "second", nil)

	for _, key := range []string{"test2", "test3"} {
		resp := doRequest(t, srv, http.MethodPost, fmt.Sprintf("/api/tweets/%d/likes", second), key, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doRequest(t, srv, http.MethodGet, "/api/tweets", "test", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, true, body["result"])

	tweets := body["tweets"].([]any)
	require.Len(t, tweets, 2)
	assert.Equal(t, float64(second), tweets[0].(map[string]any)["id"])
	assert.Equal(t, float64(first), tweets[1].(map[string]any)["id"])
}

func TestFeedAttachmentsAndLikes(t *testing.T) {
	srv, store := newTestServer(t)
	store.AddUser("test", "Tony")
	mike := store.AddUser("test2", "Mike")

	upload := uploadMedia(t, srv, "test", "pic.png", "image/png", []byte("png-bytes"))
	require.Equal(t, http.StatusCreated, upload.StatusCode)
	mediaID := int64(decodeBody(t, upload)["media_id"].(float64))

	tweetID := createTweet(t, srv, "test", "New tweet", []int64{mediaID})

	resp := doRequest(t, srv, http.MethodPost, fmt.Sprintf("/api/tweets/%d/likes", tweetID), "test2", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, srv, http.MethodGet, "/api/tweets", "test", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, true, body["result"])

	tweets := body["tweets"].([]any)
	require.Len(t, tweets, 1)
	tweet := tweets[0].(map[string]any)
	assert.Equal(t, "New tweet", tweet["content"])

	attachments := tweet["attachments"].([]any)
	require.Len(t, attachments, 1)
	assert.Equal(t, fmt.Sprintf("/api/medias/%d", mediaID), attachments[0])

	likes := tweet["likes"].([]any)
	require.Len(t, likes, 1)
	like := likes[0].(map[string]any)
	assert.Equal(t, float64(mike.ID), like["user_id"])
	assert.Equal(t, "Mike", like["name"])

	author := tweet["author"].(map[string]any)
	assert.Equal(t, "Tony", author["name"])
}

func TestFeedFollowGraph(t *testing.T) {
	srv, store := newTestServer(t)
	store.AddUser("test", "Tony")
	mike := store.AddUser("test2", "Mike")
	store.AddUser("test3", "John")

	createTweet(t, srv, "test2", "from mike", nil)
	createTweet(t, srv, "test3", "from john", nil)

	resp := doRequest(t, srv, http.MethodPost, fmt.Sprintf("/api/users/%d/follow", mike.ID), "test", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, srv, http.MethodGet, "/api/tweets", "test", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, true, body["result"])

	tweets := body["tweets"].([]any)
	require.Len(t, tweets, 1)
	assert.Equal(t, "from mike", tweets[0].(map[string]any)["content"])
}

func TestUserMe(t *testing.T) {
	srv, store := newTestServer(t)
	tony := store.AddUser("test", "Tony")
	mike := store.AddUser("test2", "Mike")

	resp := doRequest(t, srv, http.MethodPost, fmt.Sprintf("/api/users/%d/follow", mike.ID), "test", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, srv, http.MethodGet, "/api/users/me", "test", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, true, body["result"])

	user := body["user"].(map[string]any)
	assert.Equal(t, float64(tony.ID), user["id"])
	assert.Equal(t, "Tony", user["name"])
	assert.Empty(t, user["followers"].([]any))

	following := user["following"].([]any)
	require.Len(t, following, 1)
	followed := following[0].(map[string]any)
	assert.Equal(t, float64(mike.ID), followed["id"])
	assert.Equal(t, "Mike", followed["name"])
}

func TestUserMeAnonymous(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/users/me", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "User not found", body["detail"])
}

func TestUserByID(t *testing.T) {
	srv, store := newTestServer(t)
	tony := store.AddUser("test", "Tony")
	mike := store.AddUser("test2", "Mike")

	resp := doRequest(t, srv, http.MethodPost, fmt.Sprintf("/api/users/%d/follow", mike.ID), "test", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/users/%d", mike.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, true, body["result"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "Mike", user["name"])
	followers := user["followers"].([]any)
	require.Len(t, followers, 1)
	assert.Equal(t, float64(tony.ID), followers[0].(map[string]any)["id"])
}

func TestUserByIDNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/users/999", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "User not found", body["detail"])
}
