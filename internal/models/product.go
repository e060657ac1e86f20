// Package models содержит доменные структуры витрины кондиционеров:
// товары, заявки на обслуживание, техников, пользователей, отзывы и
// агрегаты для админской панели. JSON-теги повторяют контракт удалённого
// API, validate-теги описывают минимальную схему ответа, которую шлюз
// проверяет перед тем, как отдать данные дальше.
package models

// Specs: технические характеристики кондиционера.
type Specs struct {
	Capacity     string `json:"capacity,omitempty"`
	Type         string `json:"type,omitempty"`
	EnergyRating string `json:"energy_rating,omitempty"`
	CoolingPower string `json:"cooling_power,omitempty"`
	Refrigerant  string `json:"refrigerant,omitempty"`
	Warranty     string `json:"warranty,omitempty"`
}

// Fields возвращает характеристики в виде пар ключ-значение для multipart-формы.
func (s Specs) Fields() map[string]string {
	return map[string]string{
		"capacity":      s.Capacity,
		"type":          s.Type,
		"energy_rating": s.EnergyRating,
		"cooling_power": s.CoolingPower,
		"refrigerant":   s.Refrigerant,
		"warranty":      s.Warranty,
	}
}

// Product: товар каталога.
type Product struct {
	ID           string   `json:"_id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Brand        string   `json:"brand"`
	ProductModel string   `json:"productModel,omitempty"`
	Description  string   `json:"description,omitempty"`
	Tagline      string   `json:"tagline,omitempty"`
	Price        float64  `json:"price" validate:"min=0"`
	Stock        int      `json:"stock" validate:"min=0"`
	VoteCount    int      `json:"vote_count,omitempty"`
	VoteAverage  float64  `json:"vote_average,omitempty"`
	ReleaseDate  string   `json:"release_date,omitempty"`
	Specs        Specs    `json:"specs"`
	Images       []string `json:"images,omitempty"`
}

// Upload: файл, прикладываемый к multipart-запросу.
type Upload struct {
	FieldName string // Имя поля формы: images, photos, videos
	FileName  string
	Content   []byte
}

// ProductInput: данные формы создания товара. Цена и остаток приходят
// строками, как из HTML-формы, и валидируются до отправки.
type ProductInput struct {
	Name         string   `json:"name" validate:"required"`
	Brand        string   `json:"brand" validate:"required"`
	ProductModel string   `json:"productModel" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Tagline      string   `json:"tagline"`
	Price        string   `json:"price" validate:"required,numeric"`
	Stock        string   `json:"stock" validate:"required,numeric"`
	ReleaseDate  string   `json:"release_date"`
	VoteCount    int      `json:"vote_count"`
	VoteAverage  float64  `json:"vote_average"`
	Specs        Specs    `json:"specs"`
	Images       []Upload `json:"-"`
}

// ProductPatch описывает частичное обновление товара, меняются только заданные поля.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tagline     *string  `json:"tagline,omitempty"`
	Price       *string  `json:"price,omitempty" validate:"omitempty,numeric"`
	Stock       *string  `json:"stock,omitempty" validate:"omitempty,numeric"`
	Specs       *Specs   `json:"specs,omitempty"`
	Images      []Upload `json:"-"`
}
