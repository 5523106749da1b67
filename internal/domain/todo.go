package domain

// Todo is a single task record owned by the store.
// ID is assigned on insert and never changes; Completed is the only
// field the API mutates after creation.
type Todo struct {
	ID        int64
	Title     string
	Completed bool
}
