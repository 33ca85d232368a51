package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treesearch/pkg/buildinfo"
	"github.com/matzehuels/treesearch/pkg/cache"
	"github.com/matzehuels/treesearch/pkg/errors"
	tsio "github.com/matzehuels/treesearch/pkg/io"
	"github.com/matzehuels/treesearch/pkg/observability"
	"github.com/matzehuels/treesearch/pkg/runs"
)

const (
	headerRequestID = "X-Request-Id"
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command, which answers searches over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run searches posted over HTTP",
		Long: `Serve searches over HTTP.

  POST /v1/search      search a posted tree or graph, returns the result as JSON
  GET  /v1/runs/{id}   fetch an earlier result by its run_id
  GET  /healthz        liveness and build information

A request carries exactly one of "tree" ({name, children}) or "graph"
({states, edges}), a goal ("goal" or "suffix", plus "start" for graphs) and
optional "algorithm", "order", "limit", "max_limit", "all", "stop_on_match"
and "timeout" fields.

Results are cached in memory, or in Redis when serve.redis_url is set in the
config file. Runs are archived in memory, or in MongoDB when serve.mongo_uri
is set.`,
		Example: `  treesearch serve --addr :8080
  curl -s localhost:8080/v1/search -d '{"tree": {"name": "a", "children": [{"name": "b"}]}, "goal": "b"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Serve.Addr
			}
			if !cmd.Flags().Changed("timeout") && c.Config.Timeout > 0 {
				timeout = c.Config.Timeout
			}
			return c.runServe(cmd.Context(), addr, timeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultServeTimeout, "default and maximum search time per request")

	return cmd
}

// runServe listens on addr until ctx is cancelled, then shuts down
// gracefully.
func (c *CLI) runServe(ctx context.Context, addr string, timeout time.Duration) error {
	logger := loggerFromContext(ctx)

	s, err := c.newServer(ctx, logger, timeout)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: defaultHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", addr, "version", buildinfo.Version)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Server
// =============================================================================

// server handles search requests. Every request runs an independent search;
// only the result cache is shared.
type server struct {
	logger  *log.Logger
	timeout time.Duration
	maxBody int64
	params  searchParams
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	runs    runs.Store
}

// newServer connects the configured cache and run store.
func (c *CLI) newServer(ctx context.Context, logger *log.Logger, timeout time.Duration) (*server, error) {
	cfg := c.Config.Serve
	s := &server{
		logger:  logger,
		timeout: timeout,
		maxBody: cfg.MaxBodyBytes,
		params:  c.defaultParams(),
		keyer:   cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve:"),
		ttl:     c.Config.Cache.TTL,
	}

	switch {
	case c.Config.Cache.Disabled:
		s.cache = cache.NewNullCache()
	case cfg.RedisURL != "":
		client, err := cache.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		s.cache = cache.NewRedisCache(client, appName+":")
		logger.Info("Caching results in redis", "addr", client.Options().Addr)
	default:
		s.cache = cache.NewMemoryCache(cfg.CacheEntries)
	}

	if cfg.MongoURI != "" {
		store, err := runs.DialMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.Retention)
		if err != nil {
			_ = s.cache.Close()
			return nil, err
		}
		s.runs = store
		logger.Info("Archiving runs in mongodb", "database", cfg.MongoDatabase)
	} else {
		s.runs = runs.NewMemoryStore(cfg.HistoryEntries)
	}
	return s, nil
}

// Close releases the cache and the run store.
func (s *server) Close() error {
	return stderrors.Join(s.cache.Close(), s.runs.Close())
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/search", s.handleSearch)
	r.Get("/v1/runs/{id}", s.handleRun)
	return r
}

// requestID tags each request with a UUID, echoes it in the response header
// and attaches a logger carrying it to the request context.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		ctx := withLogger(r.Context(), s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// observe reports every request to the HTTP hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// searchRequest is the body of POST /v1/search. Omitted search parameters
// keep the server defaults.
type searchRequest struct {
	Tree  json.RawMessage `json:"tree,omitempty"`
	Graph json.RawMessage `json:"graph,omitempty"`
	goalSpec
	searchParams
	Timeout string `json:"timeout,omitempty"`
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	}

	req := searchRequest{searchParams: s.params}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request: %v", err))
		return
	}

	params, err := s.resolveParams(req)
	if err != nil {
		writeError(w, 0, err)
		return
	}

	res, err := s.search(ctx, req, params)
	if err != nil {
		loggerFromContext(ctx).Warn("search failed", "err", err)
		writeError(w, 0, err)
		return
	}
	s.archive(ctx, res)
	writeJSON(w, http.StatusOK, res)
}

// archive stores res in the run archive so its run ID can be fetched. A
// cached result is stored again only when the archive no longer holds it.
func (s *server) archive(ctx context.Context, res tsio.Result) {
	logger := loggerFromContext(ctx)
	if res.Cached {
		_, err := s.runs.Get(ctx, res.RunID)
		if err == nil {
			return
		}
		if !errors.Is(err, errors.ErrCodeNotFound) {
			logger.Warn("looking up archived run failed", "run_id", res.RunID, "err", err)
			return
		}
		logger.Debug("re-archiving evicted run", "run_id", res.RunID)
	}
	if err := s.runs.Put(ctx, res); err != nil {
		logger.Warn("archiving run failed", "run_id", res.RunID, "err", err)
	}
}

func (s *server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "run id %q is not a UUID", id))
		return
	}
	res, err := s.runs.Get(r.Context(), id)
	if err != nil {
		writeError(w, 0, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// resolveParams applies the request timeout, bounded by the server's.
func (s *server) resolveParams(req searchRequest) (searchParams, error) {
	params := req.searchParams
	params.Timeout = s.timeout
	if req.Timeout != "" {
		d, err := time.ParseDuration(req.Timeout)
		if err != nil {
			return params, errors.Wrap(errors.ErrCodeInvalidInput, err, "timeout %q", req.Timeout)
		}
		if d <= 0 {
			return params, errors.New(errors.ErrCodeInvalidInput, "timeout must be positive, got %s", d)
		}
		if s.timeout <= 0 || d < s.timeout {
			params.Timeout = d
		}
	}
	return params, params.validate()
}

func (s *server) search(ctx context.Context, req searchRequest, params searchParams) (tsio.Result, error) {
	switch {
	case len(req.Tree) > 0 && len(req.Graph) > 0:
		return tsio.Result{}, errors.New(errors.ErrCodeInvalidInput, "send either tree or graph, not both")
	case len(req.Tree) > 0:
		root, err := tsio.ReadTree(bytes.NewReader(req.Tree), tsio.FormatJSON)
		if err != nil {
			return tsio.Result{}, err
		}
		p, err := treeProblem(root, req.goalSpec)
		if err != nil {
			return tsio.Result{}, err
		}
		hash, err := canonicalHash(func(w io.Writer) error { return tsio.WriteTree(root, w, tsio.FormatJSON) })
		if err != nil {
			return tsio.Result{}, err
		}
		key := s.keyer.SearchKey(hash, keyOpts("tree", req.goalSpec, params))
		return cached(ctx, s.cache, key, CacheConfig{TTL: s.ttl}, func() (tsio.Result, error) {
			run, err := runSearch(ctx, p, params, nodeName)
			return run.Result, err
		})
	case len(req.Graph) > 0:
		g, err := tsio.ReadGraph(bytes.NewReader(req.Graph), tsio.FormatJSON)
		if err != nil {
			return tsio.Result{}, err
		}
		p, err := graphProblem(g, req.goalSpec)
		if err != nil {
			return tsio.Result{}, err
		}
		hash, err := canonicalHash(func(w io.Writer) error { return tsio.WriteGraph(g, w, tsio.FormatJSON) })
		if err != nil {
			return tsio.Result{}, err
		}
		key := s.keyer.SearchKey(hash, keyOpts("graph", req.goalSpec, params))
		return cached(ctx, s.cache, key, CacheConfig{TTL: s.ttl}, func() (tsio.Result, error) {
			run, err := runSearch(ctx, p, params, stateID)
			return run.Result, err
		})
	}
	return tsio.Result{}, errors.New(errors.ErrCodeInvalidInput, "request needs a tree or a graph")
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// writeError writes err as JSON. A zero status is derived from the error
// code.
func writeError(w http.ResponseWriter, status int, err error) {
	if status == 0 {
		status = httpStatus(err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

// httpStatus maps error codes to HTTP status codes.
func httpStatus(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidLimit, errors.ErrCodeInvalidProblem,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidTree, errors.ErrCodeInvalidGraph,
		errors.ErrCodeInvalidGoal, errors.ErrCodeInvalidPath, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
