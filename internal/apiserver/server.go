package apiserver

import (
	"context"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"log/slog"
	"net"
	"net/http"
)

type Server struct {
	log            *slog.Logger
	config         *types.Config
	healthService  types.AgentHealthService
	registry       types.RegistryService
	sshService     types.SSHService
	metricsHandler http.Handler
	validate       *validator.Validate
	limiter        *subjectLimiter
	httpServer     *http.Server
}

func New(
	config *types.Config,
	healthService types.AgentHealthService,
	registry types.RegistryService,
	sshService types.SSHService,
	metricsHandler http.Handler,
) *Server {
	return &Server{
		log:            slog.With(slog.String("component", "apiserver")),
		config:         config,
		healthService:  healthService,
		registry:       registry,
		sshService:     sshService,
		metricsHandler: metricsHandler,
		validate:       validator.New(),
		limiter:        newSubjectLimiter(config.HealthRateLimit),
	}
}

func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting api server", slog.String("addr", s.config.APIAddr))

	s.httpServer = &http.Server{
		Addr:    s.config.APIAddr,
		Handler: h2c.NewHandler(s.Routes(), &http2.Server{}),
	}

	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to setup listener for api server: %w", err)
	}

	go s.httpServer.Serve(lis)
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("shutting down api server")
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.canonicalLogMiddleware)

	if s.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.metricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.With(s.rateLimit).Get("/workspace-agent-health/{key}", s.getAllAgentsHealth)
		r.With(s.rateLimit).Get("/workspace-agent-health/{key}/{agentId}", s.getAgentHealth)

		r.Route("/workspace/{workspaceId}", func(r chi.Router) {
			r.Put("/", s.saveWorkspace)
			r.Route("/machine/{machineId}", func(r chi.Router) {
				r.Put("/", s.saveMachine)
				r.Put("/status", s.updateMachineStatus)
				r.Get("/logs", s.listMachineLogs)
			})
		})

		r.Route("/ssh/{service}", func(r chi.Router) {
			r.Get("/", s.listSSHPairs)
			r.Post("/", s.createSSHPair)
			r.Post("/generate", s.generateSSHPair)
			r.Delete("/{name}", s.deleteSSHPair)
		})
	})

	return r
}
