package listview

import (
	"cmp"
	"errors"
	"slices"
	"strings"
)

// Mode определяет, где живёт пагинация экрана.
type Mode int

const (
	// ClientPaged: коллекция загружена целиком, страницы режутся локально.
	ClientPaged Mode = iota
	// ServerPaged: сервер отдаёт одну страницу и её метаданные.
	ServerPaged
)

func (m Mode) String() string {
	if m == ServerPaged {
		return "server"
	}
	return "client"
}

// ErrPageSize возвращается New при неположительном размере страницы.
var ErrPageSize = errors.New("listview: page size must be positive")

// Compare сравнивает две записи по ключу сортировки.
type Compare[T any] func(a, b T) int

// Filter: дополнительный предикат экрана (рейтинг, бренд, техник).
type Filter[T any] func(T) bool

// Config описывает экран: по каким полям искать, по каким ключам
// сортировать и сколько строк на странице.
type Config[T any] struct {
	SearchFields []func(T) string
	SortKeys     map[string]Compare[T]
	PageSize     int
	Mode         Mode
}

// Page: видимый срез коллекции. StartIndex и EndIndex — полуоткрытые
// границы [StartIndex, EndIndex) среза в отфильтрованной коллекции.
type Page[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"pageNumber"`
	PageCount  int `json:"pageCount"`
	TotalCount int `json:"totalCount"`
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
	PageSize   int `json:"pageSize"`
}

// Engine применяет Query к коллекции записей типа T.
type Engine[T any] struct {
	cfg Config[T]
}

// New создаёт движок для экрана.
func New[T any](cfg Config[T]) (*Engine[T], error) {
	if cfg.PageSize <= 0 {
		return nil, ErrPageSize
	}
	return &Engine[T]{cfg: cfg}, nil
}

// MustNew как New, но паникует на неверной конфигурации.
func MustNew[T any](cfg Config[T]) *Engine[T] {
	e, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Mode возвращает режим пагинации экрана.
func (e *Engine[T]) Mode() Mode { return e.cfg.Mode }

// PageSize возвращает размер страницы экрана.
func (e *Engine[T]) PageSize() int { return e.cfg.PageSize }

// SizeFor возвращает размер страницы для запроса q: q.PageSize, если он
// задан, иначе размер экрана.
func (e *Engine[T]) SizeFor(q Query) int {
	if q.PageSize > 0 {
		return q.PageSize
	}
	return e.cfg.PageSize
}

// HasSortKey сообщает, известен ли экрану ключ сортировки.
func (e *Engine[T]) HasSortKey(key string) bool {
	_, ok := e.cfg.SortKeys[key]
	return ok
}

// Matches сообщает, содержит ли хотя бы одно поле поиска подстроку term
// без учёта регистра. Пустой term подходит любой записи.
func (e *Engine[T]) Matches(r T, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, field := range e.cfg.SearchFields {
		if strings.Contains(strings.ToLower(field(r)), needle) {
			return true
		}
	}
	return false
}

// Apply фильтрует, сортирует и режет коллекцию на страницы по
// SizeFor(q). Номер
// страницы зажимается в [1, max(1, PageCount)], пустая коллекция даёт
// одну пустую страницу.
func (e *Engine[T]) Apply(records []T, q Query, filters ...Filter[T]) Page[T] {
	visible := e.filter(records, q.Search, filters)
	e.sort(visible, q)

	size := e.SizeFor(q)
	total := len(visible)
	pageCount := max(1, (total+size-1)/size)
	page := clamp(q.Page, 1, pageCount)

	start := min((page-1)*size, total)
	end := min(start+size, total)

	return Page[T]{
		Items:      visible[start:end],
		PageNumber: page,
		PageCount:  pageCount,
		TotalCount: total,
		StartIndex: start,
		EndIndex:   end,
		PageSize:   size,
	}
}

// ServerPage строит Page из страницы, пришедшей с сервера. Метаданные
// берутся от сервера как есть, локально применяются только поиск,
// фильтры и сортировка по уже загруженным строкам. StartIndex и EndIndex
// описывают видимые строки: если поиск сузил страницу, EndIndex
// уменьшается вместе с ней.
func (e *Engine[T]) ServerPage(items []T, q Query, pageCount, totalCount int, filters ...Filter[T]) Page[T] {
	pageCount = max(1, pageCount)
	totalCount = max(0, totalCount)
	page := clamp(q.Page, 1, pageCount)

	visible := e.filter(items, q.Search, filters)
	e.sort(visible, q)

	size := e.SizeFor(q)
	start := min((page-1)*size, totalCount)
	end := min(start+len(visible), totalCount)

	return Page[T]{
		Items:      visible,
		PageNumber: page,
		PageCount:  pageCount,
		TotalCount: totalCount,
		StartIndex: start,
		EndIndex:   end,
		PageSize:   size,
	}
}

func (e *Engine[T]) filter(records []T, term string, filters []Filter[T]) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if !passes(r, filters) {
			continue
		}
		if e.Matches(r, term) {
			out = append(out, r)
		}
	}
	return out
}

func (e *Engine[T]) sort(records []T, q Query) {
	compare, ok := e.cfg.SortKeys[q.SortKey]
	if q.SortKey == "" || !ok {
		return
	}
	if q.Direction == Desc {
		slices.SortStableFunc(records, func(a, b T) int { return -compare(a, b) })
		return
	}
	slices.SortStableFunc(records, compare)
}

func passes[T any](r T, filters []Filter[T]) bool {
	for _, f := range filters {
		if f != nil && !f(r) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// By строит Compare по упорядочиваемому полю.
func By[T any, K cmp.Ordered](key func(T) K) Compare[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// ByFold строит Compare по строковому полю без учёта регистра.
func ByFold[T any](key func(T) string) Compare[T] {
	return func(a, b T) int {
		return cmp.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
	}
}

// Contains возвращает фильтр «поле содержит term без учёта регистра».
// Пустой term отключает фильтр.
func Contains[T any](field func(T) string, term string) Filter[T] {
	if term == "" {
		return nil
	}
	needle := strings.ToLower(term)
	return func(r T) bool {
		return strings.Contains(strings.ToLower(field(r)), needle)
	}
}

// Equals возвращает фильтр точного совпадения. Пустое want отключает фильтр.
func Equals[T any](field func(T) string, want string) Filter[T] {
	if want == "" {
		return nil
	}
	return func(r T) bool {
		return field(r) == want
	}
}
