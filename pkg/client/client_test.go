package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-actorrunner/pkg/actor"
	"github.com/goliatone/go-actorrunner/pkg/value"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchSchemaPostsCredential(t *testing.T) {
	var gotMethod, gotPath, gotBody, gotContentType string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.EscapedPath()
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"schema": {"url": "https://a", "count": 2}, "actorInfo": {"title": "Scraper"}}`)
	})

	c, err := New(srv.URL + "/api/")
	require.NoError(t, err)

	res, err := c.FetchSchema(context.Background(), "user/scraper", "secret")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/actors/user%2Fscraper/schema", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"apiKey": "secret"}`, gotBody)
	assert.Equal(t, []string{"url", "count"}, res.Schema.Keys())
	require.NotNil(t, res.Info)
	assert.Equal(t, "Scraper", res.Info.Title)
}

func TestFetchSchemaNon2xx(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error": "not found"}`)
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.FetchSchema(context.Background(), "missing", "k")
	respErr, ok := actor.AsResponseError(err)
	require.True(t, ok, "expected ResponseError, got %v", err)
	assert.Equal(t, http.StatusNotFound, respErr.StatusCode)
	assert.Equal(t, "not found", respErr.Message)
}

func TestRunActorSendsOrderedInput(t *testing.T) {
	var gotBody string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/actors/a1/run", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		_, _ = io.WriteString(w, `{"status": "SUCCEEDED", "stats": {"runTimeSecs": 1.2}, "results": [1, 2], "runId": "r1"}`)
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	input := value.Object(
		value.Member{Key: "zeta", Value: value.Number(1)},
		value.Member{Key: "alpha", Value: value.String("x")},
	)
	res, err := c.RunActor(context.Background(), "a1", "k", input)
	require.NoError(t, err)

	assert.Equal(t, `{"apiKey":"k","input":{"zeta":1,"alpha":"x"}}`, gotBody)
	assert.Equal(t, "SUCCEEDED", res.Status)
	assert.Equal(t, "r1", res.RunID)
	require.NotNil(t, res.Stats)
	assert.InDelta(t, 1.2, res.Stats.RunTimeSecs, 1e-9)
}

func TestRunActorFailureCarriesRunDetails(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error": "Run failed", "statusMessage": "Actor timed out", "runId": "r1"}`)
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.RunActor(context.Background(), "a1", "k", value.Object())
	respErr, ok := actor.AsResponseError(err)
	require.True(t, ok)
	assert.Equal(t, "Actor timed out", respErr.StatusMessage)
	assert.Equal(t, "r1", respErr.RunID)
}

func TestTransportAndDecodeErrors(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<html>ok</html>`)
	})
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.RunActor(context.Background(), "a1", "k", value.Object())
	var transportErr *actor.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "decode run", transportErr.Op)

	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()
	c, err = New(closed.URL)
	require.NoError(t, err)
	_, err = c.FetchSchema(context.Background(), "a1", "k")
	require.ErrorAs(t, err, &transportErr)
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
	})
	defer close(release)

	c, err := New(srv.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.FetchSchema(context.Background(), "slow", "k")
	var transportErr *actor.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestNewValidatesBaseURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://host", "localhost:3000", "http://"} {
		_, err := New(raw)
		assert.Error(t, err, "expected error for %q", raw)
	}
	c, err := New(" https://api.example.com/v1/ ")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1", c.BaseURL())
}

func TestEmptyActorID(t *testing.T) {
	c, err := New("http://127.0.0.1:1")
	require.NoError(t, err)
	_, err = c.FetchSchema(context.Background(), " ", "k")
	assert.Error(t, err)
}
