package middleware

import (
	"net/http"

	"github.com/forgo/madoka/api/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorHandler is installed as echo's HTTPErrorHandler. Every error a
// handler returns ends up here and is written as application/problem+json.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	problem := problemFor(err)

	logger := GetLogger(c)
	switch {
	case problem.Status >= http.StatusInternalServerError:
		cause := problem.Unwrap()
		if cause == nil {
			cause = err
		}
		logger.Error().Stack().Err(cause).Int("status", problem.Status).Msg(problem.Title)
	case problem.Status >= http.StatusBadRequest:
		logger.Warn().Int("status", problem.Status).Str("detail", problem.Detail).Msg(problem.Title)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(problem.Status)
		return
	}
	problem.WithInstance(c.Request().URL.Path).WriteJSON(c.Response())
}

// problemFor converts any error into the problem it renders as
func problemFor(err error) *model.ProblemDetails {
	var problem *model.ProblemDetails
	if errors.As(err, &problem) {
		return problem
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Code {
		case http.StatusNotFound:
			return model.NewRouteNotFoundError()
		case http.StatusMethodNotAllowed:
			return model.NewMethodNotAllowedError()
		}
		detail := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			detail = msg
		}
		return model.NewHTTPError(httpErr.Code, detail).WithCause(err)
	}

	return model.NewInternalError("").WithCause(errors.WithStack(err))
}
