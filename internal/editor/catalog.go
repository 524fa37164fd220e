package editor

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/notifications"
)

type LoadState int

const (
	Loading LoadState = iota
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Loaded:
		return "Loaded"
	case Failed:
		return "Failed"
	default:
		return "Loading"
	}
}

// Loadable is one catalog list together with how far its fetch got.
type Loadable[T any] struct {
	State LoadState
	Items []T
	Err   error
}

func LoadedWith[T any](items []T) Loadable[T] {
	return Loadable[T]{State: Loaded, Items: items}
}

func FailedWith[T any](err error) Loadable[T] {
	return Loadable[T]{State: Failed, Err: err}
}

type Catalog struct {
	Ingredients Loadable[api.Ingredient]
	Glasses     Loadable[api.Glass]
	Garnishes   Loadable[api.Garnish]
}

// NewCatalog builds a fully loaded catalog.
func NewCatalog(ingredients []api.Ingredient, glasses []api.Glass, garnishes []api.Garnish) *Catalog {
	return &Catalog{
		Ingredients: LoadedWith(ingredients),
		Glasses:     LoadedWith(glasses),
		Garnishes:   LoadedWith(garnishes),
	}
}

func find[T any](list Loadable[T], match func(T) bool) (T, bool) {
	var empty T
	if list.State != Loaded {
		return empty, false
	}
	for _, item := range list.Items {
		if match(item) {
			return item, true
		}
	}
	return empty, false
}

func (c *Catalog) Ingredient(id string) (api.Ingredient, bool) {
	if c == nil || id == "" {
		return api.Ingredient{}, false
	}
	return find(c.Ingredients, func(i api.Ingredient) bool { return i.Id == id })
}

// IngredientByName matches on name or short name, ignoring case.
func (c *Catalog) IngredientByName(name string) (api.Ingredient, bool) {
	name = strings.TrimSpace(name)
	if c == nil || name == "" {
		return api.Ingredient{}, false
	}
	return find(c.Ingredients, func(i api.Ingredient) bool {
		return strings.EqualFold(i.Name, name) || (i.ShortName != nil && strings.EqualFold(*i.ShortName, name))
	})
}

func (c *Catalog) Glass(id string) (api.Glass, bool) {
	if c == nil || id == "" {
		return api.Glass{}, false
	}
	return find(c.Glasses, func(g api.Glass) bool { return g.Id == id })
}

func (c *Catalog) GlassByName(name string) (api.Glass, bool) {
	name = strings.TrimSpace(name)
	if c == nil || name == "" {
		return api.Glass{}, false
	}
	return find(c.Glasses, func(g api.Glass) bool { return strings.EqualFold(g.Name, name) })
}

func (c *Catalog) Garnish(id string) (api.Garnish, bool) {
	if c == nil || id == "" {
		return api.Garnish{}, false
	}
	return find(c.Garnishes, func(g api.Garnish) bool { return g.Id == id })
}

type Option struct {
	Value    string
	Label    string
	Disabled bool
}

const (
	LoadingLabel     = "Loading..."
	UnavailableLabel = "Unavailable"
	SelectLabel      = "Select"
)

// Options renders a select list for one catalog.
func Options[T any](list Loadable[T], value func(T) string, label func(T) string) []Option {
	switch list.State {
	case Loading:
		return []Option{{Label: LoadingLabel, Disabled: true}}
	case Failed:
		return []Option{{Label: UnavailableLabel, Disabled: true}}
	}
	options := make([]Option, 0, len(list.Items)+1)
	options = append(options, Option{Label: SelectLabel})
	for _, item := range list.Items {
		options = append(options, Option{Value: value(item), Label: label(item)})
	}
	slices.SortStableFunc(options[1:], func(a, b Option) int {
		return strings.Compare(strings.ToLower(a.Label), strings.ToLower(b.Label))
	})
	return options
}

func (c *Catalog) IngredientOptions() []Option {
	return Options(c.Ingredients,
		func(i api.Ingredient) string { return i.Id },
		func(i api.Ingredient) string { return i.Name })
}

func (c *Catalog) GlassOptions() []Option {
	return Options(c.Glasses,
		func(g api.Glass) string { return g.Id },
		func(g api.Glass) string { return g.Name })
}

func (c *Catalog) GarnishOptions() []Option {
	return Options(c.Garnishes,
		func(g api.Garnish) string { return g.Id },
		func(g api.Garnish) string { return g.Name })
}

// CatalogSource fetches the reference lists. The API client satisfies it.
type CatalogSource interface {
	ListIngredients(ctx context.Context) ([]api.Ingredient, error)
	ListGlasses(ctx context.Context) ([]api.Glass, error)
	ListGarnishes(ctx context.Context) ([]api.Garnish, error)
}

type Loader struct {
	Source   CatalogSource
	Notifier notifications.Notifier
	Logger   *zap.Logger
}

func loadInto[T any](ctx context.Context, l *Loader, what string, fetch func(context.Context) ([]T, error), into *Loadable[T]) func() error {
	return func() error {
		items, err := fetch(ctx)
		if err != nil {
			*into = FailedWith[T](err)
			l.logger().Warn("Catalog fetch failed", zap.String("catalog", what), zap.Error(err))
			if l.Notifier != nil {
				l.Notifier.Notify(ctx, notifications.Error("Failed to load "+what+": "+err.Error()))
			}
			return nil
		}
		*into = LoadedWith(items)
		return nil
	}
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// Load fetches all three lists concurrently, once each. A failed fetch only
// marks its own list as Failed.
func (l *Loader) Load(ctx context.Context) *Catalog {
	catalog := &Catalog{}
	var group errgroup.Group
	group.Go(loadInto(ctx, l, "ingredients", l.Source.ListIngredients, &catalog.Ingredients))
	group.Go(loadInto(ctx, l, "glasses", l.Source.ListGlasses, &catalog.Glasses))
	group.Go(loadInto(ctx, l, "garnishes", l.Source.ListGarnishes, &catalog.Garnishes))
	// loadInto records failures on the catalog and never fails the group.
	_ = group.Wait()
	return catalog
}
