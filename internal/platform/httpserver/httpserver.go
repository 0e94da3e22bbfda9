package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"chauffeur.local/internal/platform/config"
)

func New(cfg config.Config, handler http.Handler) *http.Server {
	return NewWithAddr(cfg, cfg.Addr, handler)
}

// NewWithAddr 复用 cfg 的超时配置，监听另一个地址（例如 admin 端口）。
func NewWithAddr(cfg config.Config, addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// RunWithGracefulShutdownContext 阻塞运行 srv，直到 stopCtx 结束后在 shutdownTimeout 内优雅关闭。
func RunWithGracefulShutdownContext(srv *http.Server, shutdownTimeout time.Duration, stopCtx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-stopCtx.Done():
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}
	return nil
}

// RunAll 同时运行多个 server；任一个异常退出时取消其余的，返回第一个错误。
func RunAll(stopCtx context.Context, shutdownTimeout time.Duration, servers ...*http.Server) error {
	ctx, cancel := context.WithCancel(stopCtx)
	defer cancel()

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			errCh <- RunWithGracefulShutdownContext(srv, shutdownTimeout, ctx)
		}(srv)
	}

	var first error
	for range servers {
		if err := <-errCh; err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}
