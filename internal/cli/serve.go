package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	recterrors "github.com/matzehuels/rectcut/pkg/errors"
	"github.com/matzehuels/rectcut/pkg/geom"
	"github.com/matzehuels/rectcut/pkg/pipeline"
)

// newServeCmd creates the serve command, exposing the partitioner as an
// HTTP API.
//
// Endpoints:
//
//	POST /api/v1/partition   body: {"points": [[x,y], ...]}
//	                         query: format=json|svg (default json)
//	GET  /healthz
func newServeCmd(cfgPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the partitioner over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner, err := newRunner(c.Context(), *cfgPath, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			logger := loggerFromContext(c.Context())
			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           newRouter(runner, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-c.Context().Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Infof("Listening on %s", cfg.Server.Addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// partitionResponse is the JSON body of a successful partition request.
type partitionResponse struct {
	ID    string          `json:"id"`
	Rects []geom.Rect     `json:"rects"`
	Stats partitionStats  `json:"stats"`
	Cache map[string]bool `json:"cache"`
}

// partitionStats is the wire form of partition statistics.
type partitionStats struct {
	Vertices int `json:"vertices"`
	Concave  int `json:"concave"`
	Chords   int `json:"chords"`
	Rects    int `json:"rects"`
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestLogger logs one line per request through the charm logger.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start))
		})
	}
}

// newRouter assembles the chi router for the API.
func newRouter(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/api/v1/partition", handlePartition(runner, logger))

	return r
}

// handlePartition decodes the polygon body, runs the pipeline, and writes
// the response in the requested format.
func handlePartition(runner *pipeline.Runner, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p geom.Polygon
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, recterrors.New(recterrors.ErrCodeInvalidInput, "decode body: %v", err))
			return
		}

		format := r.URL.Query().Get("format")
		if format == "" {
			format = pipeline.FormatJSON
		}
		if err := pipeline.ValidateFormat(format); err != nil {
			writeError(w, err)
			return
		}

		id := uuid.NewString()
		result, err := runner.Execute(r.Context(), p, pipeline.Options{
			Formats: []string{format},
			Refresh: r.URL.Query().Get("refresh") == "true",
			Logger:  logger,
		})
		if err != nil {
			logger.Warnf("partition %s failed: %v", id, err)
			writeError(w, err)
			return
		}
		logger.Debugf("partition %s: %d rects (cached=%v)", id, len(result.Rects), result.CacheInfo.PartitionHit)

		if format == pipeline.FormatSVG {
			w.Header().Set("Content-Type", "image/svg+xml")
			w.Header().Set("X-Partition-ID", id)
			_, _ = w.Write(result.Artifacts[format])
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(partitionResponse{
			ID:    id,
			Rects: result.Rects,
			Stats: partitionStats{
				Vertices: result.Stats.Partition.Vertices,
				Concave:  result.Stats.Partition.Concave,
				Chords:   result.Stats.Partition.Chords,
				Rects:    result.Stats.Partition.Rects,
			},
			Cache: map[string]bool{
				"partition": result.CacheInfo.PartitionHit,
				"render":    result.CacheInfo.RenderHit,
			},
		})
	}
}

// writeError maps structured error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch recterrors.GetCode(err) {
	case recterrors.ErrCodeInvalidInput, recterrors.ErrCodeInvalidPolygon,
		recterrors.ErrCodeInvalidFormat, recterrors.ErrCodeInvalidPath,
		recterrors.ErrCodeMalformedPolygon:
		status = http.StatusBadRequest
	case recterrors.ErrCodeNotFound, recterrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	code := recterrors.GetCode(err)
	if code == "" {
		code = recterrors.ErrCodeInternal
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorBody{Code: string(code), Message: recterrors.UserMessage(err)},
	})
}
