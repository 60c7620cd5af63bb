package ai

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/amishk599/resumelens/internal/model"
)

// Transport failure categories.
const (
	CategoryTimeout   = "timeout"
	CategoryCanceled  = "canceled"
	CategoryAuth      = "auth"
	CategoryRateLimit = "rate_limit"
	CategoryServer    = "server"
	CategoryRequest   = "request"
	CategoryNetwork   = "network"
)

// Categorize names the kind of failure err represents. The category is only
// logged and reported in Result.Reason; no call is ever retried.
func Categorize(err error) string {
	if err == nil {
		return ""
	}

	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.Category
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}
	if errors.Is(err, context.Canceled) {
		return CategoryCanceled
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode == http.StatusUnauthorized, httpErr.StatusCode == http.StatusForbidden:
			return CategoryAuth
		case httpErr.StatusCode == http.StatusTooManyRequests:
			return CategoryRateLimit
		case httpErr.StatusCode == http.StatusRequestTimeout, httpErr.StatusCode == http.StatusGatewayTimeout:
			return CategoryTimeout
		case httpErr.StatusCode >= 500:
			return CategoryServer
		default:
			return CategoryRequest
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CategoryTimeout
	}

	return CategoryNetwork
}
