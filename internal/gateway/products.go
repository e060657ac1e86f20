package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/magabrotheeeer/aircon-console/internal/models"
)

// Products загружает весь каталог. Эндпоинт публичный.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	return List[models.Product](ctx, c, ResourceProducts, nil)
}

// Product загружает один товар.
func (c *Client) Product(ctx context.Context, id string) (models.Product, error) {
	return Get[models.Product](ctx, c, ResourceProducts, id)
}

// CreateProduct создаёт товар multipart-запросом на /api/product/create.
// Характеристики уходят одним JSON-полем specs, фото, полями images.
func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	specs, err := json.Marshal(in.Specs)
	if err != nil {
		return models.Product{}, fmt.Errorf("gateway.CreateProduct: %w", err)
	}

	form := &Form{}
	form.Add("name", in.Name).
		Add("brand", in.Brand).
		Add("productModel", in.ProductModel).
		Add("description", in.Description).
		Add("tagline", in.Tagline).
		Add("price", in.Price).
		Add("stock", in.Stock).
		Add("vote_count", strconv.Itoa(in.VoteCount)).
		Add("vote_average", strconv.FormatFloat(in.VoteAverage, 'f', -1, 64)).
		Add("specs", string(specs))
	if in.ReleaseDate != "" {
		form.Add("release_date", in.ReleaseDate)
	}
	form.Attach(withField("images", in.Images)...)

	return Create[models.Product](ctx, c, ResourceProducts, ResourceProducts+"/create", form)
}

// UpdateProduct частично обновляет товар multipart-запросом PATCH.
// В форму попадают только заданные поля патча.
func (c *Client) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	form := &Form{}
	addOptional(form, "name", patch.Name)
	addOptional(form, "brand", patch.Brand)
	addOptional(form, "description", patch.Description)
	addOptional(form, "tagline", patch.Tagline)
	addOptional(form, "price", patch.Price)
	addOptional(form, "stock", patch.Stock)
	if patch.Specs != nil {
		fields := patch.Specs.Fields()
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if fields[k] != "" {
				form.Add("specs["+k+"]", fields[k])
			}
		}
	}
	form.Attach(withField("images", patch.Images)...)

	return Update[models.Product](ctx, c, ResourceProducts, id, form)
}

// DeleteProduct удаляет товар.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return Delete(ctx, c, ResourceProducts, id)
}

func addOptional(f *Form, name string, v *string) {
	if v != nil {
		f.Add(name, *v)
	}
}

func withField(field string, files []models.Upload) []models.Upload {
	out := make([]models.Upload, 0, len(files))
	for _, f := range files {
		f.FieldName = field
		out = append(out, f)
	}
	return out
}
