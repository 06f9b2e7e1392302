package digest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"recipewatch/internal/fileutil"
	"recipewatch/internal/logging"
	"recipewatch/internal/publisher"
	"recipewatch/internal/recipe"
	"recipewatch/internal/services"
)

const (
	labelLayout       = "01/02/06"
	descriptionPrefix = "Top recipes for week of "
	day               = 24 * time.Hour
)

// Divider separates rendered recipes.
var Divider = "\n" + strings.Repeat("-", 124) + "\n\n"

// Source lists stored recipes by creation time. *store.Store satisfies it.
type Source interface {
	TimeWindow(ctx context.Context, start, end time.Time) ([]recipe.Recipe, error)
}

// Window is a half-open [Start, End) creation-time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor returns the digest window ending one day before now.
func WindowFor(now time.Time) Window {
	now = now.UTC()
	return Window{Start: now.Add(-8 * day), End: now.Add(-day)}
}

// Label renders "MM/DD/YY - MM/DD/YY".
func (w Window) Label() string {
	return w.Start.UTC().Format(labelLayout) + " - " + w.End.UTC().Format(labelLayout)
}

// Description renders "Top recipes for week of MM/DD/YY".
func (w Window) Description() string {
	return descriptionPrefix + w.Start.UTC().Format(labelLayout)
}

// Rank returns a copy of recipes sorted by score, highest first. Equal
// scores keep their input order.
func Rank(recipes []recipe.Recipe) []recipe.Recipe {
	ranked := make([]recipe.Recipe, len(recipes))
	copy(ranked, recipes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Render concatenates ranked recipes, each followed by Divider.
func Render(recipes []recipe.Recipe) string {
	var b strings.Builder
	for _, r := range Rank(recipes) {
		b.WriteString(r.String())
		b.WriteString(Divider)
	}
	return b.String()
}

// Result describes one digest build.
type Result struct {
	Window      Window
	Label       string
	Description string
	Path        string
	Count       int
	Published   bool
}

// Builder assembles and publishes digests.
type Builder struct {
	source     Source
	publisher  publisher.Publisher
	stagingDir string
	logger     *slog.Logger
	now        func() time.Time
	skipEmpty  bool
}

// Option customizes a Builder.
type Option func(*Builder)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithSkipEmpty stops Run from publishing a digest with no recipes. The
// empty file is still written to staging.
func WithSkipEmpty(skip bool) Option {
	return func(b *Builder) {
		b.skipEmpty = skip
	}
}

// NewBuilder returns a builder reading from source and writing scratch files
// into stagingDir. A nil publisher discards the digest.
func NewBuilder(source Source, pub publisher.Publisher, stagingDir string, logger *slog.Logger, opts ...Option) *Builder {
	if pub == nil {
		pub = publisher.NewNone(logger)
	}
	logger = logging.NewComponentLogger(logger, "digest")
	b := &Builder{
		source:     source,
		publisher:  pub,
		stagingDir: stagingDir,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build renders the current window to a scratch file without publishing.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	window := WindowFor(b.now())
	recipes, err := b.source.TimeWindow(ctx, window.Start, window.End)
	if err != nil {
		return Result{}, fmt.Errorf("load digest window: %w", err)
	}
	res := Result{
		Window:      window,
		Label:       window.Label(),
		Description: window.Description(),
		Count:       len(recipes),
		Path:        filepath.Join(b.stagingDir, "digest-"+window.End.Format("2006-01-02")+".txt"),
	}
	if err := os.MkdirAll(b.stagingDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("ensure staging directory: %w", err)
	}
	if err := fileutil.WriteFileAtomic(res.Path, []byte(Render(recipes)), 0o644); err != nil {
		return Result{}, fmt.Errorf("write digest: %w", err)
	}
	b.logger.Info("digest built",
		logging.String("label", res.Label),
		logging.String("path", res.Path),
		logging.Int("recipes", res.Count),
		logging.EventType("digest_built"),
	)
	return res, nil
}

// Run builds the digest and publishes it, even when the window holds no
// recipes unless WithSkipEmpty is set. Publisher errors are logged and do not
// fail the run.
func (b *Builder) Run(ctx context.Context) (Result, error) {
	res, err := b.Build(ctx)
	if err != nil {
		return res, err
	}
	if res.Count == 0 && b.skipEmpty {
		b.logger.Info("digest empty, skipping publish",
			logging.String("label", res.Label),
			logging.EventType("digest_empty"),
		)
		return res, nil
	}
	if err := b.publisher.Upload(ctx, res.Path, res.Label, res.Description); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		eventType, hint := services.Classify(err)
		logging.WarnWithContext(b.logger, "digest publish failed", eventType,
			logging.String("label", res.Label),
			logging.Error(err),
			logging.Hint(hint),
			logging.Impact("digest kept in staging only"),
		)
		return res, nil
	}
	res.Published = true
	return res, nil
}
