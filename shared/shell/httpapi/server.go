package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"github.com/bookswap-hub/bookswap/features/accounts"
	"github.com/bookswap-hub/bookswap/features/bookcatalog"
	"github.com/bookswap-hub/bookswap/features/query/bookdetails"
	"github.com/bookswap-hub/bookswap/features/query/bookshelf"
	"github.com/bookswap-hub/bookswap/features/query/swaplist"
	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell"
	"github.com/bookswap-hub/bookswap/shared/shell/blobstore"
)

const (
	defaultServiceName    = "bookswap"
	defaultMaxUploadBytes = 5 << 20
	defaultAuthRate       = 1.0
	defaultAuthBurst      = 5

	logMsgRequestCompleted = "http: request completed"
	logMsgRequestFailed    = "http: request failed"
	logAttrMethod          = "method"
	logAttrRoute           = "route"
	logAttrStatus          = "status"
	logAttrDurationMS      = "duration_ms"
	logAttrError           = "error"
)

// BookCatalog is implemented by bookcatalog.Catalog.
type BookCatalog interface {
	Create(ctx context.Context, ownerID uuid.UUID, input bookcatalog.BookInput, cover *bookcatalog.Cover) (bookdetails.BookDetails, error)
	Update(ctx context.Context, bookID uuid.UUID, requesterID uuid.UUID, patch bookcatalog.BookPatch, cover *bookcatalog.Cover) (bookdetails.BookDetails, error)
	SetStatus(ctx context.Context, bookID uuid.UUID, requesterID uuid.UUID, status core.BookStatus) (bookdetails.BookDetails, error)
	Delete(ctx context.Context, bookID uuid.UUID, requesterID uuid.UUID) error
	Get(ctx context.Context, bookID uuid.UUID) (bookdetails.BookDetails, error)
	ListAvailableExcluding(ctx context.Context, userID uuid.UUID) (bookshelf.Bookshelf, error)
	ListOwnedBy(ctx context.Context, userID uuid.UUID) (bookshelf.Bookshelf, error)
	ListAll(ctx context.Context) (bookshelf.Bookshelf, error)
}

// SwapNegotiation is implemented by swapnegotiation.Negotiation.
type SwapNegotiation interface {
	Propose(ctx context.Context, bookOffered uuid.UUID, bookRequested uuid.UUID, proposerID uuid.UUID) (swaplist.SwapInfo, error)
	Decide(ctx context.Context, swapID uuid.UUID, deciderID uuid.UUID, decision core.SwapDecision) (swaplist.SwapInfo, error)
	Withdraw(ctx context.Context, swapID uuid.UUID, requesterID uuid.UUID) error
	ListReceived(ctx context.Context, userID uuid.UUID) (swaplist.SwapList, error)
	ListSent(ctx context.Context, userID uuid.UUID) (swaplist.SwapList, error)
}

// Accounts is implemented by accounts.Accounts.
type Accounts interface {
	Register(ctx context.Context, registration accounts.Registration) (accounts.Profile, error)
	Login(ctx context.Context, email string, password string) (accounts.Session, error)
	Profile(ctx context.Context, userID uuid.UUID) (accounts.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, changes accounts.ProfileChanges) (accounts.Profile, error)
}

// TokenVerifier is implemented by auth.Service.
type TokenVerifier interface {
	Verify(token string) (core.UserIDString, error)
}

// CoverReader serves stored covers. blobstore.Store implements it.
type CoverReader interface {
	Open(ctx context.Context, key core.BlobKeyString) (io.ReadCloser, error)
}

// Dependencies are the services behind the routes.
type Dependencies struct {
	Catalog     BookCatalog
	Negotiation SwapNegotiation
	Accounts    Accounts
	Tokens      TokenVerifier
	Covers      CoverReader
}

// Server holds the gin engine and the services it routes to.
type Server struct {
	deps             Dependencies
	engine           *gin.Engine
	serviceName      string
	maxUploadBytes   int64
	authRate         float64
	authBurst        int
	gatherer         prometheus.Gatherer
	tracerProvider   trace.TracerProvider
	contextualLogger shell.ContextualLogger
}

// Option configures a Server.
type Option func(*Server)

// WithServiceName sets the service name of the tracing middleware.
func WithServiceName(name string) Option {
	return func(s *Server) {
		s.serviceName = name
	}
}

// WithMaxUploadBytes limits the body size of book create and update requests.
func WithMaxUploadBytes(limit int64) Option {
	return func(s *Server) {
		if limit > 0 {
			s.maxUploadBytes = limit
		}
	}
}

// WithAuthRateLimit limits register and login requests per client IP.
func WithAuthRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		if perSecond > 0 && burst > 0 {
			s.authRate = perSecond
			s.authBurst = burst
		}
	}
}

// WithMetrics serves the gatherer under /metrics.
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = gatherer
	}
}

// WithTracerProvider sets the provider of the tracing middleware, the global one otherwise.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(s *Server) {
		s.tracerProvider = provider
	}
}

// WithContextualLogger logs every request.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(s *Server) {
		s.contextualLogger = logger
	}
}

// NewServer creates the Server and registers all routes.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:           deps,
		serviceName:    defaultServiceName,
		maxUploadBytes: defaultMaxUploadBytes,
		authRate:       defaultAuthRate,
		authBurst:      defaultAuthBurst,
	}

	for _, opt := range opts {
		opt(s)
	}

	registerValidations()
	s.engine = s.routes()

	return s
}

// Handler returns the http.Handler to serve.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	var tracingOptions []otelgin.Option
	if s.tracerProvider != nil {
		tracingOptions = append(tracingOptions, otelgin.WithTracerProvider(s.tracerProvider))
	}
	engine.Use(otelgin.Middleware(s.serviceName, tracingOptions...))
	engine.Use(s.logRequests())

	engine.GET("/healthz", s.health)
	engine.GET("/uploads/:key", s.downloadCover)

	if s.gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{EnableOpenMetrics: true})))
	}

	limited := engine.Group("/auth", newIPRateLimiter(s.authRate, s.authBurst).middleware())
	limited.POST("/register", s.register)
	limited.POST("/login", s.login)

	authenticated := engine.Group("/", s.requireUser())
	authenticated.GET("/me", s.profile)
	authenticated.PUT("/me", s.updateProfile)

	books := authenticated.Group("/books")
	books.GET("", s.listBooks)
	books.POST("", s.limitBody(), s.createBook)
	books.GET("/:id", s.getBook)
	books.PATCH("/:id", s.limitBody(), s.updateBook)
	books.PUT("/:id/status", s.setBookStatus)
	books.DELETE("/:id", s.deleteBook)

	swaps := authenticated.Group("/swaps")
	swaps.POST("", s.proposeSwap)
	swaps.GET("/received", s.listReceivedSwaps)
	swaps.GET("/sent", s.listSentSwaps)
	swaps.PUT("/:id/decision", s.decideSwap)
	swaps.DELETE("/:id", s.withdrawSwap)

	return engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if s.contextualLogger == nil {
			return
		}

		s.contextualLogger.InfoContext(
			c.Request.Context(),
			logMsgRequestCompleted,
			logAttrMethod, c.Request.Method,
			logAttrRoute, c.FullPath(),
			logAttrStatus, c.Writer.Status(),
			logAttrDurationMS, time.Since(start).Milliseconds(),
		)
	}
}

func (s *Server) logError(c *gin.Context, msg string, err error) {
	if s.contextualLogger == nil {
		return
	}

	s.contextualLogger.ErrorContext(c.Request.Context(), msg, logAttrRoute, c.FullPath(), logAttrError, err.Error())
}

var _ CoverReader = (blobstore.Store)(nil)
