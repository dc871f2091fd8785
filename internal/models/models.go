package models

// All returns every entity for schema migration.
func All() []interface{} {
	return []interface{}{
		&Organization{},
		&User{},
		&Branch{},
		&Client{},
		&Vehicle{},
		&Employee{},
		&Service{},
		&Order{},
	}
}
