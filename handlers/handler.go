package handlers

import (
	"github.com/ZEESHAN8692/restaurant-backend/database/dbhelper"
	"github.com/ZEESHAN8692/restaurant-backend/service"
)

// Handler carries the order lifecycle and analytics services. Plain CRUD
// handlers in this package talk to dbhelper directly instead.
type Handler struct {
	Orders    *service.OrderService
	Analytics *service.AnalyticsService
	Bills     *dbhelper.BillStore
	Catalog   *dbhelper.Catalog
}

func NewHandler(orders *service.OrderService, analytics *service.AnalyticsService, bills *dbhelper.BillStore, catalog *dbhelper.Catalog) *Handler {
	return &Handler{
		Orders:    orders,
		Analytics: analytics,
		Bills:     bills,
		Catalog:   catalog,
	}
}
