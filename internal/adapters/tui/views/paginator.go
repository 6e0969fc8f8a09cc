package views

// Paginator tracks the cursor over a list shown one page at a time. The
// visible page is always the one holding the cursor.
type Paginator struct {
	size   int
	total  int
	cursor int
}

// NewPaginator creates a paginator showing pageSize rows per page
func NewPaginator(pageSize int) *Paginator {
	p := &Paginator{}
	p.SetPageSize(pageSize)
	return p
}

// SetPageSize changes the rows per page, e.g. after a terminal resize
func (p *Paginator) SetPageSize(pageSize int) {
	p.size = max(pageSize, 1)
}

// SetTotal sets the list length, clamping the cursor into it
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.cursor = max(min(p.cursor, p.total-1), 0)
}

// Cursor returns the absolute index under the cursor
func (p *Paginator) Cursor() int {
	return p.cursor
}

// CursorUp moves the cursor one row up
func (p *Paginator) CursorUp() bool {
	return p.moveTo(p.cursor - 1)
}

// CursorDown moves the cursor one row down
func (p *Paginator) CursorDown() bool {
	return p.moveTo(p.cursor + 1)
}

// NextPage moves the cursor to the first row of the next page
func (p *Paginator) NextPage() bool {
	return p.moveTo(p.pageStart() + p.size)
}

// PrevPage moves the cursor to the first row of the previous page
func (p *Paginator) PrevPage() bool {
	if p.pageStart() == 0 {
		return false
	}
	return p.moveTo(p.pageStart() - p.size)
}

// VisibleRange returns the half-open index range of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.pageStart()
	return start, min(start+p.size, p.total)
}

// CurrentPage returns the 1-based page holding the cursor
func (p *Paginator) CurrentPage() int {
	return p.cursor/p.size + 1
}

// TotalPages returns the page count, at least 1
func (p *Paginator) TotalPages() int {
	return max((p.total+p.size-1)/p.size, 1)
}

func (p *Paginator) pageStart() int {
	return p.cursor / p.size * p.size
}

func (p *Paginator) moveTo(i int) bool {
	if i < 0 || i >= p.total || i == p.cursor {
		return false
	}
	p.cursor = i
	return true
}
