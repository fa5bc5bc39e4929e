package question

import (
	"fmt"
	"sort"

	"github.com/spherical/question-splitter/internal/domain"
)

// PageMode selects how a block is mapped to a page number.
type PageMode string

const (
	// PageModeProxy maps block i to page i. Only correct with one question per page.
	PageModeProxy PageMode = "proxy"
	// PageModeFormFeed counts form-feed page terminators before the block's delimiter.
	PageModeFormFeed PageMode = "formfeed"
)

// ParsePageMode validates a configured mode. Empty means proxy.
func ParsePageMode(s string) (PageMode, error) {
	switch PageMode(s) {
	case "", PageModeProxy:
		return PageModeProxy, nil
	case PageModeFormFeed:
		return PageModeFormFeed, nil
	default:
		return "", fmt.Errorf("unknown page mode %q", s)
	}
}

// PageLocator resolves the page of each block for one document.
type PageLocator struct {
	mode PageMode
	// breaks holds the byte offsets of every form feed, ascending.
	breaks []int
}

// NewPageLocator prepares a locator over text.
func NewPageLocator(mode PageMode, text string) *PageLocator {
	l := &PageLocator{mode: mode}
	if mode == PageModeFormFeed {
		for i := 0; i < len(text); i++ {
			if text[i] == '\f' {
				l.breaks = append(l.breaks, i)
			}
		}
	}
	return l
}

// Page returns the 1-based page of block.
func (l *PageLocator) Page(block domain.RawBlock) int {
	if l.mode != PageModeFormFeed {
		return block.Index
	}
	return 1 + sort.SearchInts(l.breaks, block.Offset)
}
