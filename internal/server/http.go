package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kubev2v/migration-sizer/internal/config"
	"github.com/kubev2v/migration-sizer/internal/server/middlewares"
	"github.com/kubev2v/migration-sizer/pkg/certificates"
)

const (
	ProductionServer string = "prod"
	DevServer        string = "dev"
	apiV1            string = "/api/v1"
	healthPath       string = "/health"
)

type Server struct {
	srv *http.Server
}

func NewServer(cfg *config.Configuration, registerHandlerFn func(router *gin.RouterGroup)) (*Server, error) {
	gin.SetMode(gin.DebugMode)
	if cfg.Server.ServerMode == ProductionServer {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.MaxMultipartMemory = 64 << 20 // max 64Mb

	srv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Server.HTTPPort),
		Handler: engine,
	}

	if cfg.Server.ServerMode == ProductionServer {
		if cfg.Server.StaticsFolder != "" {
			serveStatics(engine, cfg.Server.StaticsFolder)
		}

		tlsConfig, err := certificates.NewTLSConfig(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		if err != nil {
			return nil, err
		}
		srv.TLSConfig = tlsConfig
	}

	router := engine.Group(apiV1)

	router.Use(
		middlewares.Logger(apiV1+healthPath),
		ginzap.RecoveryWithZap(zap.L().Named("http"), true),
	)

	if cfg.Auth.Enabled {
		key, err := middlewares.LoadPublicKey(cfg.Auth.JWTFilePath)
		if err != nil {
			return nil, err
		}
		router.Use(middlewares.Authenticator(key, healthPath))
	}

	registerHandlerFn(router)

	return &Server{srv: srv}, nil
}

func serveStatics(engine *gin.Engine, folder string) {
	engine.Static("/static", folder)
	engine.Static("/assets", path.Join(folder, "assets"))
	engine.StaticFile("/", path.Join(folder, "index.html"))
	engine.StaticFile("/favicon.ico", path.Join(folder, "favicon.ico"))

	engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "API endpoint not found",
			})
			return
		}
		c.File(path.Join(folder, "index.html"))
	})
}

// Start starts the HTTP or HTTPS server based on TLS configuration. It
// returns nil once the server has been stopped.
func (r *Server) Start(ctx context.Context) error {
	var err error
	if r.srv.TLSConfig != nil {
		err = r.srv.ListenAndServeTLS("", "")
	} else {
		err = r.srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (r *Server) Stop(ctx context.Context) {
	if err := r.srv.Shutdown(ctx); err != nil {
		zap.S().Named("http").Errorw("server shutdown", "error", err)
	}
}
