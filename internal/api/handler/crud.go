package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/core/ports"
)

// resource holds the request plumbing shared by every CRUD handler. Each
// resource handler embeds one and exposes documented route methods over it.
type resource[T, F, In any] struct {
	service ports.CRUDService[T, F, In]
	name    string
	filter  func(c echo.Context) (F, error)
}

func (r resource[T, F, In]) list(c echo.Context) error {
	f, err := r.filter(c)
	if err != nil {
		return err
	}
	p, err := pageParams(c, ports.DefaultPageLimit)
	if err != nil {
		return err
	}

	res, err := r.service.List(c.Request().Context(), f, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (r resource[T, F, In]) get(c echo.Context) error {
	doc, err := r.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: doc})
}

func (r resource[T, F, In]) create(c echo.Context) error {
	var in In
	if err := bindValid(c, &in); err != nil {
		return err
	}

	doc, err := r.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: r.name + " created", Data: doc})
}

func (r resource[T, F, In]) update(c echo.Context) error {
	var in In
	if err := bindValid(c, &in); err != nil {
		return err
	}

	doc, err := r.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: r.name + " updated", Data: doc})
}

func (r resource[T, F, In]) delete(c echo.Context) error {
	doc, err := r.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: r.name + " deleted", Data: doc})
}
