package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mbizohigh/chikoro/core/resource"
	"github.com/mbizohigh/chikoro/core/user"
)

type resourceApi struct {
	svc *resource.Service
}

func registerResourceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *resource.Service) {
	api := resourceApi{svc: svc}

	rg := g.Group("/resources")
	rg.GET("", api.query)
	rg.POST("", api.create, jwt, rolesMiddleware(user.RoleAdmin, user.RoleStaff))
}

func (api *resourceApi) query(ctx echo.Context) error {
	var filter resource.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return ctx.JSON(http.StatusOK, []resource.Resource{})
	}

	resources, err := api.svc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying resources")
	}
	return ctx.JSON(http.StatusOK, resources)
}

func (api *resourceApi) create(ctx echo.Context) error {
	var data resource.NewResource
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResource")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	r, err := api.svc.Create(ctx.Request().Context(), data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "creating resource")
	}
	return ctx.JSON(http.StatusCreated, r)
}
