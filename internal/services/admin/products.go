package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/lib/sl"
	"github.com/magabrotheeeer/aircon-console/internal/listview"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

// MaxProductImages: сколько фото можно приложить к товару.
const MaxProductImages = 5

func productEngine(pageSize int) (*listview.Engine[models.Product], error) {
	return listview.New(listview.Config[models.Product]{
		SearchFields: []func(models.Product) string{
			func(p models.Product) string { return p.Name },
			func(p models.Product) string { return p.Brand },
			func(p models.Product) string { return p.ProductModel },
		},
		SortKeys: map[string]listview.Compare[models.Product]{
			"name":  listview.ByFold(func(p models.Product) string { return p.Name }),
			"brand": listview.ByFold(func(p models.Product) string { return p.Brand }),
			"price": listview.By(func(p models.Product) float64 { return p.Price }),
			"stock": listview.By(func(p models.Product) int { return p.Stock }),
		},
		PageSize: pageSize,
		Mode:     listview.ClientPaged,
	})
}

// Products возвращает страницу товаров.
func (s *Service) Products(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent) (views.Listing[models.Product], error) {
	return views.Client(ctx, s.views, browserID, s.products, in, s.api(ts).Products)
}

// CreateProduct проверяет форму и создаёт товар.
func (s *Service) CreateProduct(ctx context.Context, ts gateway.TokenSource, in models.ProductInput) (models.Product, error) {
	const op = "admin.CreateProduct"

	if err := s.validate.Struct(in); err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, invalid(describe(err)))
	}
	if len(in.Images) > MaxProductImages {
		return models.Product{}, fmt.Errorf("%s: %w", op, invalid(fmt.Sprintf("maximum %d images allowed", MaxProductImages)))
	}

	p, err := s.api(ts).CreateProduct(ctx, in)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("product created", sl.Op(op), slog.String("product_id", p.ID))
	return p, nil
}

// UpdateProduct частично обновляет товар.
func (s *Service) UpdateProduct(ctx context.Context, ts gateway.TokenSource, id string, patch models.ProductPatch) (models.Product, error) {
	const op = "admin.UpdateProduct"

	if err := s.validate.Struct(patch); err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, invalid(describe(err)))
	}
	if len(patch.Images) > MaxProductImages {
		return models.Product{}, fmt.Errorf("%s: %w", op, invalid(fmt.Sprintf("maximum %d images allowed", MaxProductImages)))
	}

	p, err := s.api(ts).UpdateProduct(ctx, id, patch)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// DeleteProduct удаляет товар.
func (s *Service) DeleteProduct(ctx context.Context, ts gateway.TokenSource, id string) error {
	const op = "admin.DeleteProduct"
	if err := s.api(ts).DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("product deleted", sl.Op(op), slog.String("product_id", id))
	return nil
}

// describe превращает ошибки validator в короткий текст для пользователя.
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is a required field", fe.Field())
	case "numeric":
		return fmt.Sprintf("field %s can contain only numbers", fe.Field())
	case "email":
		return fmt.Sprintf("field %s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("field %s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("field %s is not valid", fe.Field())
	}
}
