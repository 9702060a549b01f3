package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"freightquote/internal/app/config"
	apphttp "freightquote/internal/app/http"
	"freightquote/internal/domain/quote/pdf/remote"
)

// Run serves the quote API until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	gen := remote.New(cfg.QuotesEndpoint, &http.Client{Timeout: cfg.SubmitTimeout + 5*time.Second}, logger)
	router := apphttp.NewRouter(cfg, gen, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("http: listening", zap.String("addr", cfg.HTTPAddr),
			zap.String("quotes_endpoint", cfg.QuotesEndpoint))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("http: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.SubmitTimeout+5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
