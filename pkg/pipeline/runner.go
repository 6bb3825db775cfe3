package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depthplot/pkg/artwork"
	"github.com/matzehuels/depthplot/pkg/cache"
	"github.com/matzehuels/depthplot/pkg/depth"
	dataio "github.com/matzehuels/depthplot/pkg/io"
	"github.com/matzehuels/depthplot/pkg/observability"
)

// Runner executes the pipeline with caching. Both the CLI and the server use
// it.
//
// The Runner holds no results, only the cache and logger, so multiple
// goroutines can share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means [cache.DefaultKeyer], a nil
// cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Load reads records from a JSON or YAML file.
func (r *Runner) Load(ctx context.Context, path string) ([]artwork.Record, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	records, err := dataio.ImportFile(path)
	hooks.OnLoadComplete(ctx, path, len(records), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded records", "path", path, "records", len(records))
	return records, nil
}

// Build lays out records into a fresh scene without rendering anything.
func (r *Runner) Build(ctx context.Context, records []artwork.Record, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(records))
	start := time.Now()

	sc := opts.NewScene()
	p, err := depth.New(sc, records,
		depth.WithPalette(*opts.Palette),
		depth.WithLogger(opts.Logger))
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, elapsed, err)
		return nil, err
	}
	hooks.OnBuildComplete(ctx, p.Len(), elapsed, nil)

	st := p.Stats()
	res := &Result{
		Scene:       sc,
		Plot:        p,
		RecordsHash: cache.HashRecords(records),
		Artifacts:   make(map[string][]byte),
		Stats: Stats{
			Records:   st.Total,
			Blocks:    st.Rendered,
			Skipped:   st.OutOfWindow + st.UnknownStyle,
			BuildTime: elapsed,
		},
	}
	r.Logger.Info("built plot",
		"records", st.Total,
		"blocks", st.Rendered,
		"skipped", res.Stats.Skipped,
		"duration", elapsed)
	return res, nil
}

// Execute builds the plot and renders every requested format. Artifacts are
// cached by records hash and render options unless ids are random.
func (r *Runner) Execute(ctx context.Context, records []artwork.Record, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	res, err := r.Build(ctx, records, opts)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	err = r.render(ctx, res, opts)
	res.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, res.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(res.CacheInfo.Hits),
		"duration", res.Stats.RenderTime)
	return res, nil
}

func (r *Runner) render(ctx context.Context, res *Result, opts Options) error {
	useCache := !opts.RandomIDs
	cacheHooks := observability.Cache()

	for _, f := range opts.formats {
		name := string(f)
		key := r.Keyer.ArtifactKey(res.RecordsHash, opts.ArtifactKeyOpts(name))

		if useCache && !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("cache read failed", "format", name, "err", err)
			}
			if err == nil && hit {
				cacheHooks.OnCacheHit(ctx, "artifact")
				res.Artifacts[name] = data
				res.CacheInfo.Hits = append(res.CacheInfo.Hits, name)
				continue
			}
			cacheHooks.OnCacheMiss(ctx, "artifact")
		}

		data, err := RenderFormat(ctx, res, f, opts)
		if err != nil {
			return err
		}
		res.Artifacts[name] = data
		res.CacheInfo.Misses = append(res.CacheInfo.Misses, name)

		if useCache {
			if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
				r.Logger.Warn("cache write failed", "format", name, "err", err)
				continue
			}
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return nil
}

// ExecuteFile loads path and executes the pipeline on its records.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	records, err := r.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return r.Execute(ctx, records, opts)
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
