package listview

// Window возвращает номера страниц для кнопок пагинации: не больше
// maxVisible штук, текущая страница по возможности в центре.
func Window(page, pageCount, maxVisible int) []int {
	if pageCount < 1 || maxVisible < 1 {
		return []int{}
	}
	page = clamp(page, 1, pageCount)

	start := max(1, page-maxVisible/2)
	end := min(pageCount, start+maxVisible-1)
	if end-start+1 < maxVisible {
		start = max(1, end-maxVisible+1)
	}

	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
