package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/mbizohigh/chikoro/core"
	"github.com/mbizohigh/chikoro/core/chat"
	"github.com/mbizohigh/chikoro/core/event"
	"github.com/mbizohigh/chikoro/core/notice"
	"github.com/mbizohigh/chikoro/core/payment"
	"github.com/mbizohigh/chikoro/core/portfolio"
	"github.com/mbizohigh/chikoro/core/resource"
	"github.com/mbizohigh/chikoro/core/smslog"
	"github.com/mbizohigh/chikoro/core/student"
	"github.com/mbizohigh/chikoro/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		UserSvc      *user.Service
		StudentSvc   *student.Service
		NoticeSvc    *notice.Service
		PaymentSvc   *payment.Service
		SMSSvc       *smslog.Service
		ResourceSvc  *resource.Service
		EventSvc     *event.Service
		PortfolioSvc *portfolio.Service
		ChatSvc      *chat.Service
		EmailSvc     core.EmailService
		Logger       core.Logger
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: core.Conf.Server.AllowedOrigins,
	}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, func() { _ = s.Stop(context.Background()) })
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAuthAPI(api, s.opts.UserSvc, s.opts.StudentSvc)
	registerStudentAPI(api, jwt, s.opts.StudentSvc)
	registerNoticeAPI(api, jwt, s.opts.NoticeSvc)
	registerPaymentAPI(api, jwt, s.opts.PaymentSvc)
	registerSMSAPI(api, jwt, s.opts.SMSSvc)
	registerResourceAPI(api, jwt, s.opts.ResourceSvc)
	registerEventAPI(api, jwt, s.opts.EventSvc)
	registerPortfolioAPI(api, jwt, s.opts.PortfolioSvc, s.opts.UserSvc)
	registerChatAPI(api, s.opts.ChatSvc)
	registerContactAPI(api, s.opts.EmailSvc)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the "+core.Conf.SchoolName+" API!")
}
