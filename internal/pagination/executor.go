package pagination

// Envelope is the response body of a paginated route. Field names are part of the public contract.
type Envelope[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

// Paginate validates p and cuts the window (p.Page-1)*p.Size .. +p.Size out of items.
// A page past the last one yields an empty window, not an error. The returned items never
// share backing storage with the input.
func Paginate[T any](items []T, p Params, opts Options) (Envelope[T], error) {
	if err := opts.Validate(p); err != nil {
		return Envelope[T]{}, err
	}

	total := len(items)
	pages := PageCount(total, p.Size)
	env := Envelope[T]{
		Items: []T{},
		Total: total,
		Page:  p.Page,
		Size:  p.Size,
		Pages: pages,
	}
	// pages is checked first so (page-1)*size cannot overflow for absurd page numbers.
	if p.Page > pages {
		return env, nil
	}

	start := (p.Page - 1) * p.Size
	end := start + p.Size
	if end > total {
		end = total
	}
	env.Items = make([]T, end-start)
	copy(env.Items, items[start:end])
	return env, nil
}

// PageCount is ceil(total/size), 0 for an empty sequence.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
