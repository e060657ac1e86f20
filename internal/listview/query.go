// Package listview реализует движок списочных экранов: поиск, сортировку
// и постраничный вывод над уже загруженной коллекцией записей.
//
// Движок чистый и детерминированный: он не делает I/O и не изменяет
// записи, а только строит представление над ними. Для экранов, которые
// пагинируются на сервере, есть отдельный режим ServerPaged, в котором
// движок доверяет метаданным страницы от сервера.
package listview

// Direction: направление сортировки.
type Direction string

const (
	// Asc: по возрастанию.
	Asc Direction = "asc"
	// Desc: по убыванию.
	Desc Direction = "desc"
)

// Query хранит пользовательские параметры списка: строку поиска, ключ и
// направление сортировки, номер и размер страницы.
//
// Любое изменение поиска или сортировки сбрасывает Page в 1, поэтому
// изменённый фильтр никогда не оставляет экран на несуществующей странице.
type Query struct {
	Search    string    `json:"search"`
	SortKey   string    `json:"sortKey,omitempty"`
	Direction Direction `json:"direction"`
	Page      int       `json:"page"`
	PageSize  int       `json:"pageSize"`
}

// NewQuery возвращает запрос первой страницы без поиска и сортировки.
func NewQuery(pageSize int) Query {
	return Query{Direction: Asc, Page: 1, PageSize: pageSize}
}

// WithSearch задаёт строку поиска. Пробелы не обрезаются: строка из одних
// пробелов ищется буквально.
func (q Query) WithSearch(term string) Query {
	if term == q.Search {
		return q
	}
	q.Search = term
	q.Page = 1
	return q
}

// WithSort выбирает ключ сортировки. Повторный выбор того же ключа
// переключает направление, новый ключ всегда начинает с Asc.
func (q Query) WithSort(key string) Query {
	if key == q.SortKey {
		if q.Direction == Asc {
			q.Direction = Desc
		} else {
			q.Direction = Asc
		}
	} else {
		q.SortKey = key
		q.Direction = Asc
	}
	q.Page = 1
	return q
}

// WithOrder задаёт ключ и направление явно, например из параметров URL.
func (q Query) WithOrder(key string, dir Direction) Query {
	if dir != Desc {
		dir = Asc
	}
	if key == q.SortKey && dir == q.Direction {
		return q
	}
	q.SortKey = key
	q.Direction = dir
	q.Page = 1
	return q
}

// WithPage переходит на страницу n. Выход за границы исправляет движок.
func (q Query) WithPage(n int) Query {
	q.Page = n
	return q
}
