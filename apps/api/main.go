package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mbizohigh/chikoro/core"
	"github.com/mbizohigh/chikoro/core/chat"
	"github.com/mbizohigh/chikoro/core/event"
	"github.com/mbizohigh/chikoro/core/notice"
	"github.com/mbizohigh/chikoro/core/payment"
	"github.com/mbizohigh/chikoro/core/portfolio"
	"github.com/mbizohigh/chikoro/core/resource"
	"github.com/mbizohigh/chikoro/core/seed"
	"github.com/mbizohigh/chikoro/core/smslog"
	"github.com/mbizohigh/chikoro/core/student"
	"github.com/mbizohigh/chikoro/core/user"

	echoapi "github.com/mbizohigh/chikoro/apps/api/echo"
	emailsvc "github.com/mbizohigh/chikoro/services/email"
	inferencesvc "github.com/mbizohigh/chikoro/services/inference"
	logsvc "github.com/mbizohigh/chikoro/services/logger"
	paymentsvc "github.com/mbizohigh/chikoro/services/payment"
	smssvc "github.com/mbizohigh/chikoro/services/sms"
	"github.com/mbizohigh/chikoro/storage/database"
	sqlxrepos "github.com/mbizohigh/chikoro/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	// set up DB
	logger.Info(fmt.Sprintf("connecting to %s", database.MaskURL(core.Conf.Database.URL)))
	db, err := database.Open(core.Conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing database: %v", err), err)
		}
	}()
	if err := database.Migrate(db); err != nil {
		logger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
	}

	// set up repositories
	usrRepo := sqlxrepos.NewUserRepository(db)
	stdRepo := sqlxrepos.NewStudentRepository(db)
	noticeRepo := sqlxrepos.NewNoticeRepository(db)
	payRepo := sqlxrepos.NewPaymentRepository(db)
	smsRepo := sqlxrepos.NewSMSLogRepository(db)
	resRepo := sqlxrepos.NewResourceRepository(db)
	eventRepo := sqlxrepos.NewEventRepository(db)
	pfRepo := sqlxrepos.NewPortfolioRepository(db)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	opts := &echoapi.Options{
		Address:      core.Conf.Server.Addr,
		UserSvc:      user.NewService(usrRepo),
		StudentSvc:   student.NewService(stdRepo, usrRepo),
		NoticeSvc:    notice.NewService(noticeRepo),
		PaymentSvc:   payment.NewService(payRepo, paymentsvc.NewMockProcessor(), logger),
		SMSSvc:       smslog.NewService(smsRepo, smssvc.NewConsoleService()),
		ResourceSvc:  resource.NewService(resRepo),
		EventSvc:     event.NewService(eventRepo),
		PortfolioSvc: portfolio.NewService(pfRepo),
		ChatSvc:      chat.NewService(inferencesvc.NewHuggingFaceService(core.Conf.Chat)),
		EmailSvc:     mailSvc,
		Logger:       logger,
	}

	// seed an empty store with starter data
	seedRepos := seed.Repos{User: usrRepo, Student: stdRepo, Notice: noticeRepo, Resource: resRepo}
	if err := seed.Run(context.Background(), seedRepos); err != nil {
		logger.Fatal(fmt.Sprintf("seeding database: %v", err), err)
	}

	// start API server
	logger.Info(fmt.Sprintf("%s API listening on %s", core.Conf.AppName, core.Conf.Server.Addr))
	app := echoapi.NewServer(opts)
	if err := app.Start(); err != nil {
		logger.Fatal(fmt.Sprintf("server stopped: %v", err), err)
	}
}
