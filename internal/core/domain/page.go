package domain

// Page is the typed list envelope every paginated endpoint resolves to.
// The client validates the raw wire envelope at the API boundary and fails
// loudly on shape mismatch instead of guessing between response layouts.
type Page[T any] struct {
	Items []T
	Total int
}
