package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

var (
	ErrNoAPIKey       = errors.New("API key is required")
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrNilContext     = errors.New("context cannot be nil")
	ErrRequestFailed  = errors.New("request failed")
	ErrMaxRetries     = errors.New("max retries exceeded")
	ErrNoEmbedding    = errors.New("provider returned no embedding")
)

type APIErrorResponse struct {
	Error APIError `json:"error"`
}

type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	Param      string `json:"param"`
	Code       any    `json:"code"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrRequestFailed
}

type RateLimitError struct {
	APIError
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (status %d): %s", e.StatusCode, e.Message)
}

type AuthenticationError struct {
	APIError
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Message)
}

type TimeoutError struct {
	APIError
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout: %s", e.Message)
}

type InvalidRequestError struct {
	APIError
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request (status %d): %s", e.StatusCode, e.Message)
}

func parseAPIError(statusCode int, header http.Header, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode, Message: string(body)}

	var resp APIErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error.Message != "" {
		apiErr.Message = resp.Error.Message
		apiErr.Type = resp.Error.Type
		apiErr.Param = resp.Error.Param
		apiErr.Code = resp.Error.Code
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthenticationError{APIError: *apiErr}
	case http.StatusTooManyRequests:
		return &RateLimitError{
			APIError:   *apiErr,
			RetryAfter: parseRetryAfter(header.Get("Retry-After")),
		}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &InvalidRequestError{APIError: *apiErr}
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return &TimeoutError{APIError: *apiErr}
	default:
		return apiErr
	}
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}

	if t, err := http.ParseTime(value); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}

	return 0
}

func IsRateLimitError(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

func IsAuthError(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

func IsTimeoutError(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

func IsInvalidRequestError(err error) bool {
	var invalidErr *InvalidRequestError
	return errors.As(err, &invalidErr)
}

func IsRetryableError(err error) bool {
	if IsRateLimitError(err) {
		return true
	}
	if IsTimeoutError(err) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.StatusCode)
	}

	return false
}
