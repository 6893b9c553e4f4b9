package relay_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"ChartAI/internal/relay"
)

func jsonResponse(t *testing.T, status int, v any) *http.Response {
	t.Helper()
	buffer := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buffer).Encode(v))
	return &http.Response{StatusCode: status, Body: io.NopCloser(buffer)}
}

func TestGet_UnwrapsContents(t *testing.T) {
	t.Parallel()

	// Arrange: a mock client that checks the wrapped URL.
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	target := "https://example.com/chart/^NSEI?interval=1d&range=1mo"

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "relay.test", req.URL.Host)
			require.Equal(t, target, req.URL.Query().Get("url"))
			return jsonResponse(t, http.StatusOK, map[string]any{
				"contents": `{"ok":true}`,
				"status":   map[string]any{"http_code": 200},
			}), nil
		}).
		Times(1)

	client := relay.New("https://relay.test/get", httpClient)

	// Act
	body, err := client.Get(t.Context(), target)

	// Assert
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(body))
}

func TestGet_UpstreamStatus(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(jsonResponse(t, http.StatusOK, map[string]any{
			"contents": "Not Found",
			"status":   map[string]any{"http_code": 404},
		}), nil).
		Times(1)

	_, err := relay.New("https://relay.test/get", httpClient).Get(t.Context(), "https://example.com")
	require.ErrorIs(t, err, relay.ErrStatus)
}

func TestGet_RelayStatus(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(&http.Response{StatusCode: http.StatusBadGateway, Body: io.NopCloser(bytes.NewReader(nil))}, nil).
		Times(1)

	_, err := relay.New("https://relay.test/get", httpClient).Get(t.Context(), "https://example.com")
	require.ErrorIs(t, err, relay.ErrStatus)
}

func TestGet_MalformedEnvelope(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(jsonResponse(t, http.StatusOK, map[string]any{"status": map[string]any{}}), nil).
		Times(1)

	_, err := relay.New("https://relay.test/get", httpClient).Get(t.Context(), "https://example.com")
	require.ErrorIs(t, err, relay.ErrEnvelope)
}

func TestGet_TransportError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	boom := errors.New("dial tcp: connection refused")
	httpClient.EXPECT().Do(gomock.Any()).Return(nil, boom).Times(1)

	_, err := relay.New("https://relay.test/get", httpClient).Get(t.Context(), "https://example.com")
	require.ErrorIs(t, err, boom)
}
