package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/forgo/madoka/api/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, data)
}

// WriteNoContent writes a 204 No Content response
func WriteNoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// DecodeJSON decodes a JSON request body into the given struct.
// Unknown fields are ignored and an empty body leaves v untouched, so a
// missing body reaches validation like an empty object would.
func DecodeJSON(c echo.Context, v interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return model.NewBadRequestError(fmt.Sprintf("Field %s has the wrong type", typeErr.Field))
	}
	return model.NewBadRequestError("Request body must be valid JSON")
}
