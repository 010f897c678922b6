// Package menu caches the storefront category tree on disk, one file per
// language, and refreshes it on a schedule.
package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/spf13/afero"

	"github.com/donaldgifford/sleekshop-go/internal/metrics"
	"github.com/donaldgifford/sleekshop-go/pkg/logger"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

var (
	// ErrNoTemplatePath is returned when the cache has nowhere to write.
	ErrNoTemplatePath = errors.New("menu cache requires a template path")

	// ErrInvalidLanguage is returned for language tags that are not of the
	// form ll or ll_CC. Tags become file names, so nothing else is accepted.
	ErrInvalidLanguage = errors.New("invalid menu language")
)

var languageTag = regexp.MustCompile(`^[A-Za-z]{2,3}(_[A-Za-z]{2,4})?$`)

// TreeFetcher loads a category tree below parentID.
type TreeFetcher interface {
	Get(ctx context.Context, parentID int, lang string) (*domain.Envelope[[]domain.Category], error)
}

// Cache serves the menu tree from <template_path>/cache/<lang>-menu.tmp,
// fetching and writing it on a miss.
type Cache struct {
	fetcher     TreeFetcher
	fs          afero.Fs
	dir         string
	rootID      int
	defaultLang string
	log         *slog.Logger

	mu sync.Mutex
}

// Option configures a Cache.
type Option func(*Cache)

// WithFs replaces the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(c *Cache) { c.fs = fsys }
}

// WithLogger sets the cache logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.log = logger.Component(l, "menu") }
}

// NewCache creates a Cache rooted at opts.TemplatePath for the tree below
// opts.CategoriesID.
func NewCache(fetcher TreeFetcher, opts domain.Options, options ...Option) (*Cache, error) {
	if opts.TemplatePath == "" {
		return nil, ErrNoTemplatePath
	}

	c := &Cache{
		fetcher:     fetcher,
		fs:          afero.NewOsFs(),
		dir:         filepath.Join(opts.TemplatePath, "cache"),
		rootID:      opts.CategoriesID,
		defaultLang: opts.DefaultLanguage,
		log:         logger.Component(nil, "menu"),
	}
	for _, o := range options {
		o(c)
	}
	return c, nil
}

// Path returns the cache file for lang, or ErrInvalidLanguage.
func (c *Cache) Path(lang string) (string, error) {
	lang, err := c.lang(lang)
	if err != nil {
		return "", err
	}
	return c.path(lang), nil
}

func (c *Cache) path(lang string) string {
	return filepath.Join(c.dir, lang+"-menu.tmp")
}

// Get returns the cached menu for lang, fetching and caching it when no
// readable cache file exists. Error envelopes are returned uncached.
func (c *Cache) Get(ctx context.Context, lang string) (*domain.Envelope[[]domain.Category], error) {
	lang, err := c.lang(lang)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tree, ok := c.read(lang)
	if ok {
		metrics.MenuCacheHitsTotal.Inc()
		return domain.Success(tree), nil
	}

	metrics.MenuCacheMissesTotal.Inc()
	return c.fetch(ctx, lang)
}

// Refresh fetches the tree for lang and overwrites the cache file.
func (c *Cache) Refresh(ctx context.Context, lang string) error {
	lang, err := c.lang(lang)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	env, err := c.fetch(ctx, lang)
	if err != nil {
		return err
	}
	if !env.OK() {
		return fmt.Errorf("refreshing menu %s: %s: %s", lang, env.Kind, env.Message)
	}
	return nil
}

// Invalidate removes the cache file for lang. A missing file is not an error.
func (c *Cache) Invalidate(lang string) error {
	lang, err := c.lang(lang)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.fs.Remove(c.path(lang))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing menu cache: %w", err)
	}
	return nil
}

func (c *Cache) fetch(ctx context.Context, lang string) (*domain.Envelope[[]domain.Category], error) {
	env, err := c.fetcher.Get(ctx, c.rootID, lang)
	if err != nil {
		return nil, err
	}
	if !env.OK() {
		return env, nil
	}

	if err := c.write(lang, env.Response); err != nil {
		c.log.Warn("writing menu cache", "lang", lang, "error", err)
	}
	return env, nil
}

func (c *Cache) read(lang string) ([]domain.Category, bool) {
	data, err := afero.ReadFile(c.fs, c.path(lang))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.log.Warn("reading menu cache", "lang", lang, "error", err)
		}
		return nil, false
	}

	var tree []domain.Category
	if err := json.Unmarshal(data, &tree); err != nil {
		c.log.Warn("discarding corrupt menu cache", "lang", lang, "error", err)
		return nil, false
	}
	return tree, true
}

func (c *Cache) write(lang string, tree []domain.Category) error {
	if tree == nil {
		tree = []domain.Category{}
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encoding menu: %w", err)
	}
	if err := c.fs.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	return afero.WriteFile(c.fs, c.path(lang), data, 0o644)
}

// lang resolves the empty tag to the default language and rejects anything
// that is not a plain language tag.
func (c *Cache) lang(lang string) (string, error) {
	if lang == "" {
		lang = c.defaultLang
	}
	if !languageTag.MatchString(lang) {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}
	return lang, nil
}
