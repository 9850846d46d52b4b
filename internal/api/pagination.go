package api

// CollectPages drains a cursor-paginated endpoint into a single slice.
//
// fetch is called with the cursor to request ("" for the first page) and
// returns one page of items plus the next cursor, or "" when the final
// page has been served. Items are returned in arrival order. A cursor
// handed back twice means the server is looping, and collection stops
// with a *PaginationLoopError.
func CollectPages[T any](fetch func(cursor string) ([]T, string, error)) ([]T, error) {
	var items []T
	seen := make(map[string]bool)
	cursor := ""

	for {
		page, next, err := fetch(cursor)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)

		if next == "" {
			return items, nil
		}
		if seen[next] {
			return nil, &PaginationLoopError{Cursor: next}
		}
		seen[next] = true
		cursor = next
	}
}
