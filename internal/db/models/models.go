package models

// All lists every model managed by the schema migration.
func All() []any {
	return []any{
		&Dream{},
		&Image{},
		&User{},
	}
}
