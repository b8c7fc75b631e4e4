package client

// DefaultPageSize is how many posts a feed page holds.
const DefaultPageSize = 4

// ScrollThreshold is how close to the bottom, in scroll units, the
// position must be before the paginator advances.
const ScrollThreshold = 50

// FeedPaginator advances a feed offset in response to scroll events.
// The total post count is fetched once at construction; whether more
// data exists is re-checked against it on every event.
type FeedPaginator struct {
	pageSize      int
	threshold     float64
	currentOffset int
	totalPosts    int64

	// Navigate is called with the new offset after each advance.
	Navigate func(offset int)
}

// NewFeedPaginator starts paging from the given offset against a known
// total.
func NewFeedPaginator(startOffset int, totalPosts int64, navigate func(int)) *FeedPaginator {
	if navigate == nil {
		navigate = func(int) {}
	}
	return &FeedPaginator{
		pageSize:      DefaultPageSize,
		threshold:     ScrollThreshold,
		currentOffset: startOffset,
		totalPosts:    totalPosts,
		Navigate:      navigate,
	}
}

// Offset returns the current offset.
func (p *FeedPaginator) Offset() int {
	return p.currentOffset
}

// OnScroll handles one scroll event. pos is the current scroll
// position and max the maximum scrollable position. When the position
// is within the threshold of the bottom and the store still has posts
// beyond the next page boundary, the offset advances by the page size
// and Navigate fires with the new offset. Past the end of the data the
// event is a no-op.
func (p *FeedPaginator) OnScroll(pos, max float64) {
	if max-pos > p.threshold {
		return
	}

	next := p.currentOffset + p.pageSize
	if int64(next) > p.totalPosts {
		return
	}

	p.currentOffset = next
	p.Navigate(next)
}
