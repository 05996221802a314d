package models

// Provider is one entry in the static insurance provider directory. The
// directory is read-only and displayed without filtering or search.
type Provider struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Link        string  `db:"link"`
	Icon        string  `db:"icon"`
	Rating      float64 `db:"rating"`
}
