package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/ZEESHAN8692/restaurant-backend/config"
	"github.com/ZEESHAN8692/restaurant-backend/handlers"
	"github.com/ZEESHAN8692/restaurant-backend/middlewares"
	"github.com/ZEESHAN8692/restaurant-backend/models"
	"github.com/ZEESHAN8692/restaurant-backend/utils"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes(h *handlers.Handler) *Server {
	router := mux.NewRouter()
	router.Use(recoverMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")

	router.HandleFunc("/register", handlers.Register).Methods("POST")
	router.HandleFunc("/login", handlers.Login).Methods("POST")
	router.HandleFunc("/refresh", handlers.RefreshToken).Methods("POST")
	router.HandleFunc("/book", handlers.BookTable).Methods("POST")

	public := router.PathPrefix("/api/public").Subrouter()
	public.HandleFunc("/get-all-products", handlers.PublicProducts).Methods("GET")
	public.HandleFunc("/create-order", h.CreateOrder).Methods("POST")

	authRoutes := router.PathPrefix("/api").Subrouter()
	authRoutes.Use(middlewares.AuthMiddleware)
	authRoutes.HandleFunc("/logout", handlers.Logout).Methods("POST")
	authRoutes.HandleFunc("/current-user-details", handlers.CurrentUserDetails).Methods("POST")

	admin := authRoutes.PathPrefix("/admin").Subrouter()
	admin.Use(middlewares.RoleBasedMiddleware(models.RoleAdmin))

	admin.HandleFunc("/products", handlers.ListProducts).Methods("GET")
	admin.HandleFunc("/products", handlers.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", handlers.GetProduct).Methods("GET")
	admin.HandleFunc("/products/{id}", handlers.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", handlers.DeleteProduct).Methods("DELETE")

	admin.HandleFunc("/pending-orders", h.PendingOrders).Methods("GET")
	admin.HandleFunc("/update-order", h.UpdateOrder).Methods("POST")
	admin.HandleFunc("/today-orders", h.TodayOrders).Methods("GET")

	admin.HandleFunc("/generate-bill", h.GenerateBill).Methods("POST")
	admin.HandleFunc("/bills", h.ListBills).Methods("GET")

	admin.HandleFunc("/get-stats", h.GetStats).Methods("GET")
	admin.HandleFunc("/get-payment-collection", h.PaymentCollection).Methods("GET")
	admin.HandleFunc("/get-top-items", h.TopItems).Methods("GET")
	admin.HandleFunc("/dashboard", h.Dashboard).Methods("GET")

	admin.HandleFunc("/upcoming-bookings", handlers.UpcomingBookings).Methods("GET")

	return &Server{
		Router: router,
	}
}

func (svr *Server) Run(port string) error {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{config.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	svr.server = &http.Server{
		Addr:              port,
		Handler:           c.Handler(svr.Router),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}

// recoverMiddleware is the last-resort handler: nothing a request does is
// allowed to take the process down.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logrus.WithField("panic", rec).Error("recovered from handler panic")
				utils.RespondError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
