package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"stylora-be/internal/auth"
	"stylora-be/internal/cart"
	"stylora-be/internal/handler"
	"stylora-be/internal/middleware"
	"stylora-be/internal/order"
	"stylora-be/internal/user"
)

type Server struct {
	echo         *echo.Echo
	authHandler  *handler.AuthHandler
	cartHandler  *handler.CartHandler
	orderHandler *handler.OrderHandler
	tokens       *auth.Manager
	limiter      *middleware.RateLimiter
}

func NewServer(users user.Service, carts cart.Service, orders order.Service, tokens *auth.Manager) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLogging())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:         e,
		authHandler:  handler.NewAuthHandler(users),
		cartHandler:  handler.NewCartHandler(carts),
		orderHandler: handler.NewOrderHandler(orders),
		tokens:       tokens,
		limiter:      middleware.NewRateLimiter(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Server is running"})
	})

	// -------- public --------
	public := api.Group("", s.limiter.Middleware())
	public.POST("/signup", s.authHandler.Signup)
	public.POST("/login", s.authHandler.Login)

	// -------- authenticated --------
	authed := api.Group("", middleware.RequireAuth(s.tokens), s.limiter.Middleware())
	authed.POST("/password", s.authHandler.ChangePassword)
	authed.GET("/profile", s.authHandler.Profile)
	authed.PUT("/profile", s.authHandler.UpdateProfile)

	authed.GET("/cart", s.cartHandler.Get)
	authed.POST("/cart/add", s.cartHandler.Add)
	authed.POST("/cart/remove", s.cartHandler.Remove)
	authed.POST("/cart/update-quantity", s.cartHandler.UpdateQuantity)
	authed.POST("/cart/clear", s.cartHandler.Clear)

	authed.POST("/orders", s.orderHandler.Place)
	authed.GET("/orders", s.orderHandler.List)
	authed.GET("/orders/:id", s.orderHandler.Get)
	authed.PATCH("/orders/:id/status", s.orderHandler.UpdateStatus)

	authed.GET("/checkout/saved", s.orderHandler.SavedCheckout)
}

// Handler exposes the routed engine for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
