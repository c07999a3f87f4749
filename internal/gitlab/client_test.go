package gitlab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClientFactory(t *testing.T) {
	c := NewClientFactory().
		NewClient("https://gitlab.example.com/", "foo").(*client) // nolint: forcetypeassert, lll
	// A trailing slash on the base URL must not produce double slashes in
	// request URLs.
	require.Equal(t, "https://gitlab.example.com", c.baseURL)
	require.Equal(t, "foo", c.token)
	require.NotNil(t, c.httpClient)
}

func TestJobTrace(t *testing.T) {
	testCases := []struct {
		name       string
		handler    http.HandlerFunc
		assertions func(trace string, err error)
	}{
		{
			name: "non-2xx response",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			assertions: func(_ string, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "received status 401")
				require.Contains(t, err.Error(), "error fetching trace")
			},
		},
		{
			name: "success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				require.Equal(
					t,
					"/api/v4/projects/1234/jobs/42/trace",
					r.URL.Path,
				)
				require.Equal(t, "glpat-foo", r.Header.Get("PRIVATE-TOKEN"))
				w.Write([]byte("trace text")) // nolint: errcheck
			},
			assertions: func(trace string, err error) {
				require.NoError(t, err)
				require.Equal(t, "trace text", trace)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(testCase.handler)
			defer server.Close()
			client := NewClientFactory().NewClient(server.URL, "glpat-foo")
			trace, err := client.JobTrace(context.Background(), 1234, 42)
			testCase.assertions(trace, err)
		})
	}
}

func TestVersion(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v4/version", r.URL.Path)
			w.Write([]byte(`{"version":"16.7.0"}`)) // nolint: errcheck
		}),
	)
	defer server.Close()
	client := NewClientFactory().NewClient(server.URL, "glpat-foo")
	require.NoError(t, client.Version(context.Background()))
}
