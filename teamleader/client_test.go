package teamleader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a client pointed at a mock server that records
// every form body it receives.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]url.Values) {
	t.Helper()

	var bodies []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		bodies = append(bodies, r.PostForm)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := New("group-1", "secret-1", zerolog.Nop(), WithBaseURL(server.URL))
	return client, &bodies
}

func TestNew(t *testing.T) {
	client := New("g", "s", zerolog.Nop())
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultPageSize, client.pageSize)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClientOptions(t *testing.T) {
	t.Run("with base URL", func(t *testing.T) {
		client := New("g", "s", zerolog.Nop(), WithBaseURL("http://localhost:8080/"))
		assert.Equal(t, "http://localhost:8080", client.baseURL)
	})

	t.Run("with timeout", func(t *testing.T) {
		client := New("g", "s", zerolog.Nop(), WithTimeout(5*time.Second))
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with page size", func(t *testing.T) {
		client := New("g", "s", zerolog.Nop(), WithPageSize(50))
		assert.Equal(t, 50, client.pageSize)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client := New("g", "s", zerolog.Nop(), WithHTTPClient(custom))
		assert.Equal(t, custom, client.httpClient)
	})
}

func TestDoMergesCredentials(t *testing.T) {
	client, bodies := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/getTags.php", r.URL.Path)
		w.Write([]byte(`[]`))
	})

	_, err := client.do(context.Background(), "getTags", Fields{"foo": "bar"})
	require.NoError(t, err)

	require.Len(t, *bodies, 1)
	form := (*bodies)[0]
	assert.Equal(t, "group-1", form.Get("api_group"))
	assert.Equal(t, "secret-1", form.Get("api_secret"))
	assert.Equal(t, "bar", form.Get("foo"))
}

func TestDoRejectsReservedFields(t *testing.T) {
	client, bodies := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := client.do(context.Background(), "getTags", Fields{"api_secret": "stolen"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, *bodies, "no request should be made")
}

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    error
		message string
	}{
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"reason":"bad creds"}`,
			kind:    ErrUnauthorized,
			message: "bad creds",
		},
		{
			name:    "rate limited via 505",
			status:  505,
			body:    `{"reason":"slow down"}`,
			kind:    ErrRateLimitExceeded,
			message: "slow down",
		},
		{
			name:    "bad request",
			status:  http.StatusBadRequest,
			body:    `{"reason":"missing field"}`,
			kind:    ErrBadRequest,
			message: "missing field",
		},
		{
			name:    "unknown status",
			status:  http.StatusBadGateway,
			body:    `{"reason":"upstream"}`,
			kind:    ErrUnknownAPI,
			message: "upstream",
		},
		{
			name:    "non-JSON error body",
			status:  http.StatusInternalServerError,
			body:    "boom",
			kind:    ErrUnknownAPI,
			message: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.do(context.Background(), "getTags", nil)
			require.ErrorIs(t, err, tt.kind)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.body, string(apiErr.Body))
		})
	}
}

func TestDoReturnsBodyVerbatim(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1}]`))
	})

	raw, err := client.do(context.Background(), "getTags", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(raw))
}

func TestDoExactlyOneAttempt(t *testing.T) {
	client, bodies := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"reason":"flaky"}`))
	})

	_, err := client.do(context.Background(), "getTags", nil)
	require.Error(t, err)
	assert.Len(t, *bodies, 1, "failures must not be retried")
}

func TestAPIErrorClassification(t *testing.T) {
	rateErr := &APIError{kind: ErrRateLimitExceeded, StatusCode: 505, Message: "slow down"}
	assert.True(t, rateErr.IsRateLimited())
	assert.False(t, rateErr.IsUnauthorized())
	assert.Equal(t, "teamleader: rate limit exceeded: status 505: slow down", rateErr.Error())

	authErr := &APIError{kind: ErrUnauthorized, StatusCode: 401, Message: "bad creds"}
	assert.True(t, authErr.IsUnauthorized())
	assert.False(t, authErr.IsRateLimited())
}

func TestInvalidInputError(t *testing.T) {
	err := invalidInput("gender", "must be one of M, F, U")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "gender")

	bare := invalidInput("", "one of contact_id or company_id is required")
	assert.Equal(t, "teamleader: invalid input: one of contact_id or company_id is required", bare.Error())
}
