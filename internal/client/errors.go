package client

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/alfredjeanlab/cafedash/internal/model"
)

// Fixed user-facing messages returned by Localize.
const (
	MsgTimeout      = "The server took too long to respond. Please try again."
	MsgUnauthorized = "Your session has expired. Please sign in again."
	MsgForbidden    = "You do not have permission to perform this action."
	MsgNotFound     = "The requested item could not be found."
	MsgConflict     = "This item conflicts with existing data."
	MsgServer       = "The server encountered an error. Please try again later."
	MsgNetwork      = "Cannot reach the server. Check your connection and try again."
	MsgUnknown      = "Something went wrong. Please try again."
)

// Localize maps err to the message shown to dashboard users. Validation
// errors and 400/422 responses keep their own text since it names the
// offending field.
func Localize(err error) string {
	if err == nil {
		return ""
	}

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized:
			return MsgUnauthorized
		case apiErr.StatusCode == http.StatusForbidden:
			return MsgForbidden
		case apiErr.StatusCode == http.StatusNotFound:
			return MsgNotFound
		case apiErr.StatusCode == http.StatusConflict:
			return MsgConflict
		case apiErr.StatusCode == http.StatusRequestTimeout, apiErr.StatusCode == http.StatusGatewayTimeout:
			return MsgTimeout
		case apiErr.StatusCode >= 500:
			return MsgServer
		case apiErr.Message != "":
			return apiErr.Message
		}
		return MsgUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return MsgTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return MsgTimeout
		}
		return MsgNetwork
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return MsgNetwork
	}
	return MsgUnknown
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
