package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mbizohigh/chikoro/core/notice"
	"github.com/mbizohigh/chikoro/core/user"
)

type noticeApi struct {
	svc *notice.Service
}

func registerNoticeAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *notice.Service) {
	api := noticeApi{svc: svc}

	ng := g.Group("/notices")
	ng.GET("", api.query)
	ng.POST("", api.create, jwt, rolesMiddleware(user.RoleAdmin, user.RoleStaff))
}

func (api *noticeApi) query(ctx echo.Context) error {
	notices, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying notices")
	}
	return ctx.JSON(http.StatusOK, notices)
}

func (api *noticeApi) create(ctx echo.Context) error {
	var data notice.NewNotice
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotice")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	n, err := api.svc.Create(ctx.Request().Context(), data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "creating notice")
	}
	return ctx.JSON(http.StatusCreated, n)
}
