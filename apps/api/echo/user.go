package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mbizohigh/chikoro/core"
	"github.com/mbizohigh/chikoro/core/student"
	"github.com/mbizohigh/chikoro/core/user"
)

type authApi struct {
	svc    *user.Service
	stdSvc *student.Service
}

func registerAuthAPI(g *echo.Group, svc *user.Service, stdSvc *student.Service) {
	api := authApi{svc: svc, stdSvc: stdSvc}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/register", api.register)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := authenticate(ctx.Request().Context(), data.Username, data.Password, api.svc)
	if err != nil {
		return err
	}
	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: usr.Public()})
}

func (api *authApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(ctx.Request().Context(), api.svc); err != nil {
		return err
	}
	if data.Role == user.RoleStudent && data.Class != "" && !student.IsValidClass(data.Class) {
		return core.NewValidationError(nil, core.FieldError{Field: "class", Error: "unknown class"})
	}

	usr, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}

	// students get a roster record alongside their account
	if usr.IsStudent() {
		if _, err := api.stdSvc.CreateForUser(ctx.Request().Context(), usr); err != nil {
			return errors.Wrap(err, "creating student record")
		}
	}

	return ctx.JSON(http.StatusCreated, MessageResponse{Message: "User created successfully"})
}

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string          `json:"token"`
		User  user.PublicUser `json:"user"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return core.Validate.Struct(lr)
}
