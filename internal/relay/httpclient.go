package relay

import "net/http"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=relay_test -destination=mock_http_client_test.go -source=httpclient.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
