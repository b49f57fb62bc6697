package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/kiitfinder/lostfound-system/internal/core/access"
	"github.com/kiitfinder/lostfound-system/internal/core/domain"
)

// bindAndValidate decodes the request body into req and runs the registered
// validator. Both failures surface as domain.ErrInvalidInput.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	return nil
}

// bindAuthenticated rejects anonymous callers before the body is read, then
// decodes it without validation. Field rules belong to the service, which
// applies them after authorization.
func bindAuthenticated(c echo.Context, req any) error {
	if _, err := access.RequireIdentity(c.Request().Context()); err != nil {
		return err
	}
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput)
	}
	return nil
}
