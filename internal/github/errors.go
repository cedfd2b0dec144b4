package github

import (
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v58/github"

	appErrors "tissue/internal/errors"
)

// classifyError maps a go-github failure onto an application error code.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return appErrors.New(appErrors.CodeRateLimited, fmt.Sprintf("%s: rate limit exceeded", op), err)
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return appErrors.New(appErrors.CodeRateLimited, fmt.Sprintf("%s: secondary rate limit exceeded", op), err)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		msg := respErr.Message
		if msg == "" {
			msg = http.StatusText(respErr.Response.StatusCode)
		}
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("%s: %s", op, msg), err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return appErrors.New(appErrors.CodeUnauthorized, fmt.Sprintf("%s: %s", op, msg), err)
		}
		return appErrors.New(appErrors.CodeRemoteFailed, fmt.Sprintf("%s: %s", op, msg), err)
	}

	return appErrors.New(appErrors.CodeRemoteFailed, fmt.Sprintf("%s: %v", op, err), err)
}
