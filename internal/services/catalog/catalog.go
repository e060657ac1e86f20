// Package catalog обслуживает публичный каталог кондиционеров: список с поиском,
// фильтром по бренду и сортировкой и карточку товара.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/listview"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

// View: имя экрана каталога в хранилище состояния.
const View = "catalog.products"

// API: вызовы удалённого API, нужные каталогу.
type API interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id string) (models.Product, error)
}

// Binder привязывает API к токену сессии.
type Binder func(ts gateway.TokenSource) API

// Filters: дополнительные фильтры каталога.
type Filters struct {
	Brand string
}

// Service реализует сценарии каталога.
type Service struct {
	api    Binder
	views  *views.Views
	screen views.Screen[models.Product]
	log    *slog.Logger
}

// NewEngine возвращает движок списка товаров: поиск по названию, бренду и
// модели, сортировка по цене, названию, остатку и рейтингу.
func NewEngine(pageSize int, mode listview.Mode) (*listview.Engine[models.Product], error) {
	return listview.New(listview.Config[models.Product]{
		SearchFields: []func(models.Product) string{
			func(p models.Product) string { return p.Name },
			func(p models.Product) string { return p.Brand },
			func(p models.Product) string { return p.ProductModel },
		},
		SortKeys: map[string]listview.Compare[models.Product]{
			"name":   listview.ByFold(func(p models.Product) string { return p.Name }),
			"brand":  listview.ByFold(func(p models.Product) string { return p.Brand }),
			"price":  listview.By(func(p models.Product) float64 { return p.Price }),
			"stock":  listview.By(func(p models.Product) int { return p.Stock }),
			"rating": listview.By(func(p models.Product) float64 { return p.VoteAverage }),
		},
		PageSize: pageSize,
		Mode:     mode,
	})
}

// New создаёт сервис каталога.
func New(api Binder, v *views.Views, pageSize int, log *slog.Logger) (*Service, error) {
	engine, err := NewEngine(pageSize, listview.ClientPaged)
	if err != nil {
		return nil, fmt.Errorf("catalog.New: %w", err)
	}
	return &Service{
		api:    api,
		views:  v,
		screen: views.Screen[models.Product]{Name: View, Engine: engine},
		log:    log,
	}, nil
}

// List возвращает страницу каталога для браузера browserID.
func (s *Service) List(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent, f Filters) (views.Listing[models.Product], error) {
	api := s.api(ts)
	return views.Client(ctx, s.views, browserID, s.screen, in, api.Products,
		brandFilter(f.Brand))
}

// Get возвращает карточку товара.
func (s *Service) Get(ctx context.Context, ts gateway.TokenSource, id string) (models.Product, error) {
	const op = "catalog.Get"
	p, err := s.api(ts).Product(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func brandFilter(brand string) listview.Filter[models.Product] {
	if brand == "" {
		return nil
	}
	return func(p models.Product) bool {
		return strings.EqualFold(p.Brand, brand)
	}
}
