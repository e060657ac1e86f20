package listview

import "sync"

// Tracker выдаёт монотонные идентификаторы загрузок по каждому экрану и
// отвечает, является ли ответ последним выданным для экрана. Ответы с
// устаревшим идентификатором отбрасываются, поэтому при быстрой смене
// поиска выигрывает последний запрос, а не последний пришедший ответ.
// Экран хранится только пока у него есть незавершённая загрузка.
type Tracker struct {
	mu     sync.Mutex
	next   uint64
	latest map[string]uint64
}

// NewTracker создаёт пустой Tracker.
func NewTracker() *Tracker {
	return &Tracker{latest: make(map[string]uint64)}
}

// Begin регистрирует новую загрузку экрана view и возвращает её id.
func (t *Tracker) Begin(view string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.latest[view] = t.next
	return t.next
}

// IsLatest сообщает, что id, последняя загрузка экрана view.
func (t *Tracker) IsLatest(view string, id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	latest, ok := t.latest[view]
	return ok && latest == id
}

// Finish завершает загрузку id экрана view и сообщает, была ли она
// последней. Завершение последней загрузки освобождает экран.
func (t *Tracker) Finish(view string, id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	latest, ok := t.latest[view]
	if !ok || latest != id {
		return false
	}
	delete(t.latest, view)
	return true
}

// Len возвращает число экранов с незавершёнными загрузками.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.latest)
}

// Forget закрывает экран: все незавершённые загрузки становятся устаревшими.
func (t *Tracker) Forget(view string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.latest, view)
}
