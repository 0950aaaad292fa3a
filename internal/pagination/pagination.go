// Package pagination computes the derived slice-and-controls state for
// paginated lists: total page count, current-page clamping, visible slice
// bounds, and the ordered pager control descriptors (page numbers plus
// ellipsis markers) the client renders.
//
// The package is pure arithmetic with no I/O. Callers own two rules that
// deliberately live outside the calculator:
//   - changing the page size resets the current page to 1;
//   - the page-size value itself comes from the PageSizes set (use
//     NormalizePageSize on untrusted input).
package pagination

// PageSizes is the closed set of allowed items-per-page values.
var PageSizes = []int{5, 10, 20, 50}

// DefaultPageSize is the items-per-page value used when a request carries
// none, matching the feed screen's initial selection.
const DefaultPageSize = 5

// maxPagesWithoutEllipsis is the largest page count rendered in full;
// above it the pager collapses skipped ranges into ellipsis markers.
const maxPagesWithoutEllipsis = 5

// ValidPageSize reports whether n is one of the allowed page sizes.
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if n == s {
			return true
		}
	}
	return false
}

// NormalizePageSize returns n when it is an allowed page size and
// DefaultPageSize otherwise.
func NormalizePageSize(n int) int {
	if ValidPageSize(n) {
		return n
	}
	return DefaultPageSize
}

// TotalPages returns ceil(totalItems/itemsPerPage). It returns 0 when there
// are no items and treats a non-positive itemsPerPage as DefaultPageSize.
func TotalPages(totalItems, itemsPerPage int) int {
	if totalItems <= 0 {
		return 0
	}
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultPageSize
	}
	return (totalItems + itemsPerPage - 1) / itemsPerPage
}

// Clamp bounds page to [1, totalPages]. When totalPages is zero (empty
// list) the result is 1 so slice bounds stay well-defined.
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// SliceBounds returns the half-open [start, end) window of the items
// visible on the given page. page is clamped first, so the result is always
// within [0, totalItems].
func SliceBounds(totalItems, itemsPerPage, page int) (start, end int) {
	if totalItems <= 0 {
		return 0, 0
	}
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultPageSize
	}
	page = Clamp(page, TotalPages(totalItems, itemsPerPage))
	start = (page - 1) * itemsPerPage
	end = start + itemsPerPage
	if end > totalItems {
		end = totalItems
	}
	return start, end
}

// Control describes one pager element: either a numbered page link or a
// non-interactive ellipsis marker standing in for a skipped range.
type Control struct {
	// Page is the 1-based page number; zero for ellipsis markers.
	Page int `json:"page,omitempty"`
	// Ellipsis marks a collapsed gap of more than one page.
	Ellipsis bool `json:"ellipsis,omitempty"`
	// Active is set on the control for the current page.
	Active bool `json:"active,omitempty"`
}

// Controls returns the ordered pager controls for the given page count and
// (already clamped) current page. Rules:
//
//   - nil when totalPages <= 1: no pager is rendered for a single page;
//   - page 1 and the last page are always present;
//   - with totalPages <= 5 every page number is rendered, no ellipsis;
//   - otherwise up to the two pages adjacent to currentPage are rendered,
//     and an ellipsis marker is inserted wherever a gap of more than one
//     page is skipped.
func Controls(totalPages, currentPage int) []Control {
	if totalPages <= 1 {
		return nil
	}
	currentPage = Clamp(currentPage, totalPages)

	controls := []Control{{Page: 1, Active: currentPage == 1}}

	if totalPages <= maxPagesWithoutEllipsis {
		for i := 2; i < totalPages; i++ {
			controls = append(controls, Control{Page: i, Active: currentPage == i})
		}
	} else {
		if currentPage > 3 {
			controls = append(controls, Control{Ellipsis: true})
		}

		// Pages adjacent to the current one, kept inside (1, totalPages).
		start := currentPage - 1
		if start < 2 {
			start = 2
		}
		end := currentPage + 1
		if end > totalPages-1 {
			end = totalPages - 1
		}
		for i := start; i <= end; i++ {
			controls = append(controls, Control{Page: i, Active: currentPage == i})
		}

		if currentPage < totalPages-2 {
			controls = append(controls, Control{Ellipsis: true})
		}
	}

	controls = append(controls, Control{Page: totalPages, Active: currentPage == totalPages})
	return controls
}

// Window is the full derived pagination state for one request.
type Window struct {
	TotalItems   int       `json:"total"`
	ItemsPerPage int       `json:"page_size"`
	CurrentPage  int       `json:"page"`
	TotalPages   int       `json:"total_pages"`
	HasPrev      bool      `json:"has_prev"`
	HasNext      bool      `json:"has_next"`
	Controls     []Control `json:"controls,omitempty"`
}

// NewWindow derives the pagination window for totalItems items shown
// itemsPerPage at a time with the requested current page. itemsPerPage is
// normalized against PageSizes and currentPage is clamped to
// [1, TotalPages]; HasPrev/HasNext are false exactly at the respective
// edges (and both false for an empty list).
func NewWindow(totalItems, itemsPerPage, currentPage int) Window {
	itemsPerPage = NormalizePageSize(itemsPerPage)
	totalPages := TotalPages(totalItems, itemsPerPage)
	currentPage = Clamp(currentPage, totalPages)

	return Window{
		TotalItems:   totalItems,
		ItemsPerPage: itemsPerPage,
		CurrentPage:  currentPage,
		TotalPages:   totalPages,
		HasPrev:      currentPage > 1,
		HasNext:      currentPage < totalPages,
		Controls:     Controls(totalPages, currentPage),
	}
}
