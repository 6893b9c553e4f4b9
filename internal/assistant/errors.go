package assistant

import "errors"

var (
	// ErrAuth means the API key was rejected or its quota is exhausted (403).
	ErrAuth = errors.New("assistant: api key rejected")
	// ErrRateLimit means the endpoint is throttling the key (429).
	ErrRateLimit = errors.New("assistant: rate limited")
	// ErrEndpoint means the model endpoint or request shape was refused (404, 400).
	ErrEndpoint = errors.New("assistant: endpoint error")
	// ErrNetwork means the endpoint could not be reached.
	ErrNetwork = errors.New("assistant: network error")
	// ErrUnknown covers every other failure.
	ErrUnknown = errors.New("assistant: unknown error")
)

// User-facing messages, one per error class.
const (
	MsgAuth      = "API key error: the key is invalid or its quota is exhausted. Set a new one with /apikey <your-key>."
	MsgRateLimit = "Too many requests: the AI service is rate limiting this key. Please wait a minute and try again."
	MsgEndpoint  = "The AI service rejected the request: the model endpoint is unavailable or the request was malformed."
	MsgNetwork   = "Network error: could not reach the AI service. Check your internet connection and try again."
	MsgUnknown   = "Something went wrong while talking to the AI service. Please try again."
)

// UserMessage maps an assistant error to its fixed user-facing message.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuth):
		return MsgAuth
	case errors.Is(err, ErrRateLimit):
		return MsgRateLimit
	case errors.Is(err, ErrEndpoint):
		return MsgEndpoint
	case errors.Is(err, ErrNetwork):
		return MsgNetwork
	default:
		return MsgUnknown
	}
}

func statusError(code int) error {
	switch code {
	case 403:
		return ErrAuth
	case 429:
		return ErrRateLimit
	case 400, 404:
		return ErrEndpoint
	default:
		return ErrUnknown
	}
}
