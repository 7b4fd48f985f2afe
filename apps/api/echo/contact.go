package echoapi

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mbizohigh/chikoro/core"
)

type contactApi struct {
	mailSvc core.EmailService
}

func registerContactAPI(g *echo.Group, mailSvc core.EmailService) {
	api := contactApi{mailSvc: mailSvc}
	g.POST("/contact", api.send)
}

func (api *contactApi) send(ctx echo.Context) error {
	var data ContactRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ContactRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sender := mail.Address{Name: data.Name, Address: data.Email}
	api.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{core.Conf.ContactEmail},
		ReplyTo: &sender,
		Subject: fmt.Sprintf("[%s] Contact form: %s", core.Conf.SchoolName, data.Name),
		Body:    fmt.Sprintf("From: %s <%s>\n\n%s", data.Name, data.Email, data.Message),
	})
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Message sent successfully!"})
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

func (cr *ContactRequest) Validate() error {
	cr.Name = core.CleanString(cr.Name)
	cr.Email = core.CleanString(cr.Email, true /* lower */)
	cr.Message = core.CleanString(cr.Message)
	return core.Validate.Struct(cr)
}
