package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/flightops/api"
	"github.com/zvrva/flightops/config"
	"github.com/zvrva/flightops/internal/service/airlines"
	"github.com/zvrva/flightops/internal/service/airports"
	"github.com/zvrva/flightops/internal/service/analytics"
	"github.com/zvrva/flightops/internal/service/bookings"
	"github.com/zvrva/flightops/internal/service/flights"
	"github.com/zvrva/flightops/internal/service/passengers"
	"github.com/zvrva/flightops/internal/service/staff"
	"go.uber.org/zap"
)

// Services bundles the use cases exposed over HTTP.
type Services struct {
	Flights    flights.FlightUseCase
	Passengers passengers.PassengerUseCase
	Bookings   bookings.BookingUseCase
	Airlines   airlines.AirlineUseCase
	Airports   airports.AirportUseCase
	Staff      staff.StaffUseCase
	Analytics  analytics.AnalyticsUseCase
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(svc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	zap.S().Infow("http server started", "address", cfg.HTTP.Address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// NewRouter wires every resource handler under /api.
func NewRouter(svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	root := router.Group("/api")
	api.NewFlightHandler(svc.Flights).Register(root.Group("/flights"))
	api.NewPassengerHandler(svc.Passengers).Register(root.Group("/passengers"))
	api.NewBookingHandler(svc.Bookings).Register(root.Group("/bookings"))
	api.NewAirlineHandler(svc.Airlines).Register(root.Group("/airlines"))
	api.NewAirportHandler(svc.Airports).Register(root.Group("/airports"))
	api.NewStaffHandler(svc.Staff).Register(root.Group("/staff"))
	api.NewAnalyticsHandler(svc.Analytics).Register(root.Group("/analytics"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})

	return router
}
