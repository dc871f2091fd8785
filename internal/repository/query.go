package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/pagination"
)

// Query describes the filter state of a list request. The same Query value
// drives both the row fetch and the count so the two can never disagree.
type Query struct {
	// TenantID injects the organization predicate when the repository is
	// tenant scoped. uuid.Nil disables it (superuser/global reads only).
	TenantID uuid.UUID
	// Search is an optional case-insensitive substring matched against
	// SearchColumns, OR-ed across the whitelist. Empty disables the clause.
	Search        string
	SearchColumns []string
	// Filters are exact-match clauses (status enums, vehicle type, parent
	// ids), AND-ed in.
	Filters map[string]interface{}

	Params  pagination.Params
	OrderBy string
}

// scoped applies the tenant, active-flag, search and exact-match predicates
// to db. List and Count both go through here.
func (r *Repository[T]) scoped(db *gorm.DB, q Query) *gorm.DB {
	if r.opts.TenantScoped && q.TenantID != uuid.Nil {
		db = db.Where("organization_id = ?", q.TenantID)
	}
	if r.opts.SoftDelete {
		db = db.Where("is_active = ?", true)
	}
	if search := strings.TrimSpace(q.Search); search != "" && len(q.SearchColumns) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		clauses := make([]string, 0, len(q.SearchColumns))
		args := make([]interface{}, 0, len(q.SearchColumns))
		for _, column := range q.SearchColumns {
			clauses = append(clauses, "LOWER("+column+") LIKE ?")
			args = append(args, pattern)
		}
		db = db.Where(strings.Join(clauses, " OR "), args...)
	}
	for column, value := range q.Filters {
		db = db.Where(column+" = ?", value)
	}
	return db
}
