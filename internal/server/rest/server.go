// Package rest exposes the shopkeeper HTTP API on top of gin: public
// registration, login and health endpoints plus the product catalog behind
// the bearer-token access gate.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/server/auth"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/dmitrijs2005/shopkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

// UserService is the subset of services.UserService the handlers call.
type UserService interface {
	Register(ctx context.Context, c models.Credentials) (*models.User, error)
	Login(ctx context.Context, c models.Credentials) (*services.LoginResult, error)
}

// ProductService is the subset of services.ProductService the handlers call.
type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
}

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

const defaultShutdownTimeout = 10 * time.Second

type Server struct {
	address         string
	users           UserService
	products        ProductService
	tokens          TokenVerifier
	logger          logging.Logger
	shutdownTimeout time.Duration
	now             func() time.Time
	engine          *gin.Engine
}

func NewServer(a string, l logging.Logger, us UserService, ps ProductService, tv TokenVerifier, shutdownTimeout time.Duration) *Server {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	s := &Server{
		address:         a,
		users:           us,
		products:        ps,
		tokens:          tv,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
		now:             time.Now,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(s.logger), Recovery(s.logger), CORS())

	r.NoRoute(s.notFound)

	api := r.Group("/api")
	api.GET("/health", s.health)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)

	products := api.Group("/products", RequireAuth(s.tokens, s.logger))
	products.GET("", s.listProducts)
	products.GET("/:id", s.getProduct)

	return r
}

// Handler returns the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
	s.logRoutes(ctx)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) logRoutes(ctx context.Context) {
	for _, r := range s.engine.Routes() {
		s.logger.Info(ctx, "route", "method", r.Method, "path", r.Path)
	}
}
