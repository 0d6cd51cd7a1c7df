package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageFetcher_URL(t *testing.T) {
	f := NewPageFetcher("https://careers.salesforce.com/en/jobs/", "Software Engineering", "New Grads", 20, time.Second)

	got := f.URL()
	assert.Equal(t,
		"https://careers.salesforce.com/en/jobs/?jobtype=New+Grads&pagesize=20&search=&team=Software+Engineering#results",
		got)
}

func TestPageFetcher_FetchPage(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html>listing</html>"))
	}))
	defer srv.Close()

	f := NewPageFetcher(srv.URL+"/en/jobs/", "Software Engineering", "New Grads", 20, 5*time.Second)

	body, err := f.FetchPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html>listing</html>", string(body))
	assert.Contains(t, gotUA, "Mozilla/5.0", "the page is fetched with a browser-like UA")
}

func TestPageFetcher_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewPageFetcher(srv.URL, "Software Engineering", "New Grads", 20, 5*time.Second)

	_, err := f.FetchPage(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestPageFetcher_ConnectionRefused(t *testing.T) {
	// A closed server port: the transport error must surface, not panic.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	f := NewPageFetcher(srv.URL, "Software Engineering", "New Grads", 20, time.Second)
	_, err := f.FetchPage(context.Background())
	require.Error(t, err)
}
