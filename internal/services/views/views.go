// Package views хранит состояние списочных экранов между запросами и
// связывает его с движком listview.
//
// Для каждого браузера и экрана сохраняется listview.Query, поэтому
// изменение поиска или сортировки сбрасывает страницу, даже если запросы
// приходят по отдельности. Каждая загрузка получает id от Tracker, ответ
// устаревшей загрузки отбрасывается с ErrStale и состояние не меняет.
package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/aircon-console/internal/cache"
	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/lib/sl"
	"github.com/magabrotheeeer/aircon-console/internal/listview"
)

// ErrStale возвращается, если пока шла загрузка, для того же экрана
// была начата более новая.
var ErrStale = errors.New("views: response superseded by a newer request")

// Intent: изменение запроса, пришедшее от пользователя. Nil-поля не
// меняют сохранённый запрос.
type Intent struct {
	Search    *string
	SortKey   string
	Direction listview.Direction // пусто, переключить направление, как клик по заголовку
	Page      *int
}

// Apply применяет изменения к запросу q.
func (in Intent) Apply(q listview.Query) listview.Query {
	if in.Search != nil {
		q = q.WithSearch(*in.Search)
	}
	if in.SortKey != "" {
		if in.Direction == "" {
			q = q.WithSort(in.SortKey)
		} else {
			q = q.WithOrder(in.SortKey, in.Direction)
		}
	}
	if in.Page != nil {
		q = q.WithPage(*in.Page)
	}
	return q
}

// Listing: ответ списочного экрана.
type Listing[T any] struct {
	listview.Page[T]
	Query   listview.Query `json:"query"`
	Pages   []int          `json:"pages"`
	Mode    string         `json:"mode"`
	Empty   bool           `json:"empty"`
	Warning string         `json:"warning,omitempty"`
}

// Screen описывает списочный экран: имя для хранилища состояния, движок
// и порядок сортировки при первом открытии.
type Screen[T any] struct {
	Name      string
	Engine    *listview.Engine[T]
	SortKey   string
	Direction listview.Direction
}

// Initial возвращает запрос, с которым экран открывается впервые.
func (s Screen[T]) Initial() listview.Query {
	q := listview.NewQuery(s.Engine.PageSize())
	if s.SortKey != "" {
		q = q.WithOrder(s.SortKey, s.Direction)
	}
	return q
}

// StaleObserver учитывает отброшенные ответы.
type StaleObserver interface {
	StaleResponse(view string)
}

// Views хранит состояние экранов в cache.KV.
type Views struct {
	kv         cache.KV
	tracker    *listview.Tracker
	ttl        time.Duration
	maxVisible int
	stale      StaleObserver
	log        *slog.Logger
}

// New создаёт хранилище состояния экранов. maxVisible, число кнопок
// страниц в пагинаторе.
func New(kv cache.KV, ttl time.Duration, maxVisible int, stale StaleObserver, log *slog.Logger) *Views {
	return &Views{
		kv:         kv,
		tracker:    listview.NewTracker(),
		ttl:        ttl,
		maxVisible: maxVisible,
		stale:      stale,
		log:        log,
	}
}

// StateKey возвращает ключ состояния экрана view браузера browserID.
func StateKey(browserID, view string) string {
	return "view:" + browserID + ":" + view
}

// Load возвращает сохранённый запрос экрана или initial, если состояния нет.
func (v *Views) Load(ctx context.Context, browserID, view string, initial listview.Query) listview.Query {
	const op = "views.Load"
	var q listview.Query
	found, err := v.kv.Get(ctx, StateKey(browserID, view), &q)
	if err != nil {
		v.log.Warn("failed to load view state", sl.Op(op), slog.String("view", view), sl.Err(err))
		return initial
	}
	if !found {
		return initial
	}
	// размер страницы задаёт конфигурация экрана, а не сохранённое состояние
	q.PageSize = initial.PageSize
	return q
}

// Save сохраняет запрос экрана.
func (v *Views) Save(ctx context.Context, browserID, view string, q listview.Query) error {
	const op = "views.Save"
	if err := v.kv.Set(ctx, StateKey(browserID, view), q, v.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Reset забывает состояние экрана.
func (v *Views) Reset(ctx context.Context, browserID, view string) error {
	v.tracker.Forget(trackKey(browserID, view))
	return v.kv.Invalidate(ctx, StateKey(browserID, view))
}

// Client загружает коллекцию целиком и режет её на страницы локально.
func Client[T any](
	ctx context.Context,
	v *Views,
	browserID string,
	screen Screen[T],
	in Intent,
	fetch func(context.Context) ([]T, error),
	filters ...listview.Filter[T],
) (Listing[T], error) {
	view, engine := screen.Name, screen.Engine
	q := in.Apply(v.Load(ctx, browserID, view, screen.Initial()))
	id := v.tracker.Begin(trackKey(browserID, view))

	records, err := fetch(ctx)
	if !v.tracker.Finish(trackKey(browserID, view), id) {
		return discard[T](v, view)
	}
	if err != nil {
		v.persist(ctx, browserID, view, q)
		return failed(v, q, engine, err), err
	}

	page := engine.Apply(records, q, filters...)
	q.Page = page.PageNumber
	v.persist(ctx, browserID, view, q)
	return listing(v, page, q, engine.Mode()), nil
}

// Server загружает одну серверную страницу. Если запрошенная страница
// вышла за число страниц на сервере, загружается последняя.
func Server[T any](
	ctx context.Context,
	v *Views,
	browserID string,
	screen Screen[T],
	in Intent,
	fetch func(ctx context.Context, page, limit int) (gateway.Paged[T], error),
	filters ...listview.Filter[T],
) (Listing[T], error) {
	view, engine := screen.Name, screen.Engine
	q := in.Apply(v.Load(ctx, browserID, view, screen.Initial()))
	q.Page = max(1, q.Page)
	id := v.tracker.Begin(trackKey(browserID, view))

	res, err := fetch(ctx, q.Page, engine.SizeFor(q))
	if err == nil && res.PageCount > 0 && q.Page > res.PageCount {
		q.Page = res.PageCount
		res, err = fetch(ctx, q.Page, engine.SizeFor(q))
	}
	if !v.tracker.Finish(trackKey(browserID, view), id) {
		return discard[T](v, view)
	}
	if err != nil {
		v.persist(ctx, browserID, view, q)
		return failed(v, q, engine, err), err
	}

	page := engine.ServerPage(res.Items, q, res.PageCount, res.TotalCount, filters...)
	q.Page = page.PageNumber
	v.persist(ctx, browserID, view, q)
	return listing(v, page, q, engine.Mode()), nil
}

func listing[T any](v *Views, page listview.Page[T], q listview.Query, mode listview.Mode) Listing[T] {
	return Listing[T]{
		Page:  page,
		Query: q,
		Pages: listview.Window(page.PageNumber, page.PageCount, v.maxVisible),
		Mode:  mode.String(),
		Empty: page.TotalCount == 0,
	}
}

// failed строит пустой список с предупреждением: экран, который не смог
// загрузиться, показывает пустую коллекцию и текст ошибки.
func failed[T any](v *Views, q listview.Query, engine *listview.Engine[T], err error) Listing[T] {
	page := listview.Page[T]{
		Items:      []T{},
		PageNumber: 1,
		PageCount:  1,
		PageSize:   engine.SizeFor(q),
	}
	l := listing(v, page, q, engine.Mode())
	l.Empty = false
	l.Warning = gateway.Message(err)
	return l
}

func discard[T any](v *Views, view string) (Listing[T], error) {
	if v.stale != nil {
		v.stale.StaleResponse(view)
	}
	v.log.Debug("discarding stale response", slog.String("view", view))
	return Listing[T]{}, ErrStale
}

func (v *Views) persist(ctx context.Context, browserID, view string, q listview.Query) {
	if err := v.Save(ctx, browserID, view, q); err != nil {
		v.log.Warn("failed to save view state", slog.String("view", view), sl.Err(err))
	}
}

func trackKey(browserID, view string) string {
	return browserID + "\x00" + view
}
