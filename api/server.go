package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/nzai/divdash/sources"
	"go.uber.org/zap"
)

// Server dashboard api server
type Server struct {
	engine   *gin.Engine
	source   sources.Source
	renderer string
}

// NewServer create api server, renderer is the default renderer of /dashboard
func NewServer(source sources.Source, renderer string) *Server {
	gin.SetMode(gin.ReleaseMode)
	server := &Server{
		engine:   gin.New(),
		source:   source,
		renderer: renderer,
	}

	zap.L().Debug("init gin success")

	server.engine.Use(server.requestID(), server.logger(), server.recovery())

	pprof.Register(server.engine, "/v1/pprof")

	server.registerRoute()

	zap.L().Debug("register route success")

	return server
}

// Run listen on address until ctx is done
func (s Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.engine,
		ReadHeaderTimeout: time.Second * 10,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			zap.L().Warn("shutdown server failed", zap.Error(err))
		}
	}()

	zap.L().Info("api server start", zap.String("address", address))

	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.L().Error("listen and serve failed", zap.Error(err), zap.String("address", address))
		return err
	}

	zap.L().Info("api server stopped", zap.String("address", address))

	return nil
}

func (s Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}
