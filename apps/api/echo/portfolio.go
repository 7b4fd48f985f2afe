package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mbizohigh/chikoro/core/portfolio"
	"github.com/mbizohigh/chikoro/core/user"
)

type portfolioApi struct {
	svc    *portfolio.Service
	usrSvc *user.Service
}

func registerPortfolioAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *portfolio.Service, usrSvc *user.Service) {
	api := portfolioApi{svc: svc, usrSvc: usrSvc}

	pg := g.Group("/portfolios")
	pg.GET("", api.query)
	pg.POST("", api.create, jwt)
}

func (api *portfolioApi) query(ctx echo.Context) error {
	var filter portfolio.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return ctx.JSON(http.StatusOK, []portfolio.Portfolio{})
	}

	portfolios, err := api.svc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying portfolios")
	}
	return ctx.JSON(http.StatusOK, portfolios)
}

func (api *portfolioApi) create(ctx echo.Context) error {
	var data portfolio.NewPortfolio
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPortfolio")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	author, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	p, err := api.svc.Create(ctx.Request().Context(), data, author)
	if err != nil {
		return errors.Wrap(err, "creating portfolio")
	}
	return ctx.JSON(http.StatusCreated, p)
}
