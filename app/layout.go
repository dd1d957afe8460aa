package app

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth    int
	TermHeight   int
	HeaderHeight int // header line + separator
	StatusHeight int
	FeedWidth    int
	FeedHeight   int
}

// ComputeLayout allocates the header and status rows and gives the remainder
// to the feed.
func ComputeLayout(termW, termH int) Layout {
	l := Layout{
		TermWidth:    termW,
		TermHeight:   termH,
		HeaderHeight: 2, // header line + separator
		StatusHeight: 1,
	}
	l.FeedWidth = termW
	l.FeedHeight = termH - l.HeaderHeight - l.StatusHeight
	if l.FeedHeight < 3 {
		l.FeedHeight = 3
	}
	return l
}
