package llm

import (
	"context"
	"errors"

	"github.com/sandevgo/roombot/internal/core"
	"github.com/sashabaranov/go-openai"
)

// wrapError converts a provider failure into a ServiceError, marking
// deadline failures with core.ErrTimeout.
func wrapError(service, op string, err error) error {
	if err == nil {
		return nil
	}

	serr := &core.ServiceError{Service: service, Op: op, Err: err}
	if errors.Is(err, context.DeadlineExceeded) {
		serr.Err = errors.Join(core.ErrTimeout, err)
	}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		serr.StatusCode = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		serr.StatusCode = reqErr.HTTPStatusCode
	}
	return serr
}
