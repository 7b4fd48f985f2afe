package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mbizohigh/chikoro/core/smslog"
	"github.com/mbizohigh/chikoro/core/user"
)

type smsApi struct {
	svc *smslog.Service
}

func registerSMSAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *smslog.Service) {
	api := smsApi{svc: svc}

	sg := g.Group("/sms", jwt, rolesMiddleware(user.RoleAdmin, user.RoleStaff))
	sg.POST("", api.send)
	sg.GET("", api.history)
}

func (api *smsApi) send(ctx echo.Context) error {
	var data smslog.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	e, err := api.svc.Send(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "sending SMS")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *smsApi) history(ctx echo.Context) error {
	entries, err := api.svc.History(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying SMS history")
	}
	return ctx.JSON(http.StatusOK, entries)
}
