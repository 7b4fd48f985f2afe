package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mbizohigh/chikoro/core"
	"github.com/mbizohigh/chikoro/core/chat"
)

type chatApi struct {
	svc *chat.Service
}

func registerChatAPI(g *echo.Group, svc *chat.Service) {
	api := chatApi{svc: svc}
	g.POST("/chat", api.reply)
}

func (api *chatApi) reply(ctx echo.Context) error {
	var data ChatRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChatRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	response := api.svc.Reply(ctx.Request().Context(), data.Message)
	return ctx.JSON(http.StatusOK, ChatResponse{Response: response})
}

type (
	ChatRequest struct {
		Message string `json:"message" validate:"required"`
	}

	ChatResponse struct {
		Response string `json:"response"`
	}
)

func (cr *ChatRequest) Validate() error {
	cr.Message = core.CleanString(cr.Message)
	return core.Validate.Struct(cr)
}
