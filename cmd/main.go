package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/ZEESHAN8692/restaurant-backend/config"
	"github.com/ZEESHAN8692/restaurant-backend/database"
	"github.com/ZEESHAN8692/restaurant-backend/database/dbhelper"
	"github.com/ZEESHAN8692/restaurant-backend/handlers"
	"github.com/ZEESHAN8692/restaurant-backend/server"
	"github.com/ZEESHAN8692/restaurant-backend/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.Init()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	if err := database.ConnectAndMigrate(); err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	logrus.Println("migration is successful")

	orders := service.NewOrderService(
		dbhelper.NewOrderStore(database.RestroDB),
		dbhelper.NewBillStore(database.RestroDB),
		dbhelper.NewCatalog(database.RestroDB),
		service.UUIDAllocator{},
		service.UPIQRGenerator{VPA: config.UPIAddress, MerchantName: config.UPIMerchant},
	)
	analytics := service.NewAnalyticsService(database.RestroDB)

	h := handlers.NewHandler(orders, analytics,
		dbhelper.NewBillStore(database.RestroDB),
		dbhelper.NewCatalog(database.RestroDB))

	srv := server.SetupRoutes(h)
	go func() {
		logrus.Infof("server listening on %s", config.Port)
		if err := srv.Run(config.Port); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Panic("server stopped unexpectedly")
		}
	}()

	<-done
	logrus.Info("shutting down...")

	var errs error
	if err := srv.Shutdown(shutdownTimeout); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := database.ShutdownDatabase(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if errs != nil {
		logrus.WithError(errs).Error("shutdown finished with errors")
		return
	}
	logrus.Info("system is shut ..zzz")
}
