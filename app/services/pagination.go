package services

import "scrawl/app/models"

// Page is one fixed-size slice of an ordered post sequence plus the
// metadata navigation controls need.
type Page struct {
	Posts      []*models.Post
	Number     int
	PerPage    int
	TotalCount int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// Next returns the following page number for navigation links.
func (p *Page) Next() int { return p.Number + 1 }

// Prev returns the preceding page number for navigation links.
func (p *Page) Prev() int { return p.Number - 1 }

// Paginate slices posts into the requested 1-based page. A page number
// below 1 falls back to the first page and a number beyond the last page
// falls back to the last page, so a bad ?page= never fails the request.
func Paginate(posts []*models.Post, number, perPage int) *Page {
	if perPage < 1 {
		perPage = 10
	}

	total := len(posts)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Page{
		Posts:      posts[start:end],
		Number:     number,
		PerPage:    perPage,
		TotalCount: total,
		TotalPages: totalPages,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}
