package services

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// sortColumns maps the sort keys a client may send to real column names.
// Anything not listed is rejected.
type sortColumns map[string]string

var (
	userSortColumns = sortColumns{
		"id":         "id",
		"name":       "name",
		"age":        "age",
		"weight":     "weight",
		"created_at": "created_at",
	}
	foodSortColumns = sortColumns{
		"id":            "id",
		"name":          "name",
		"calories":      "calories",
		"protein":       "protein",
		"carbohydrates": "carbohydrates",
		"fat":           "fat",
		"sodium":        "sodium",
		"sugar":         "sugar",
		"created_at":    "created_at",
	}
	mealSortColumns = sortColumns{
		"id":         "id",
		"type":       "type",
		"date":       "date",
		"user_id":    "user_id",
		"created_at": "created_at",
	}
)

// listPlan is a validated ListQuery resolved against an allow-list.
type listPlan struct {
	Offset int
	Limit  int
	Column string
	Desc   bool
}

func planList(q dto.ListQuery, columns sortColumns, defaultSort string) (listPlan, error) {
	plan := listPlan{Offset: q.Offset, Limit: q.Limit}
	if plan.Limit == 0 {
		plan.Limit = DefaultLimit
	}
	if plan.Limit < 1 || plan.Limit > MaxLimit {
		return listPlan{}, invalid("limit", "must be between 1 and %d", MaxLimit)
	}
	if plan.Offset < 0 {
		return listPlan{}, invalid("offset", "must not be negative")
	}

	key := strings.ToLower(strings.TrimSpace(q.SortBy))
	if key == "" {
		key = defaultSort
	}
	column, ok := columns[key]
	if !ok {
		return listPlan{}, invalid("sort_by", "unknown sort field %q", q.SortBy)
	}
	plan.Column = column

	switch strings.ToLower(strings.TrimSpace(q.Order)) {
	case "", "asc":
	case "desc":
		plan.Desc = true
	default:
		return listPlan{}, invalid("order", "must be asc or desc")
	}
	return plan, nil
}

func (p listPlan) scopes() []func(*gorm.DB) *gorm.DB {
	return []func(*gorm.DB) *gorm.DB{OrderBy(p.Column, p.Desc), Paginate(p.Offset, p.Limit)}
}

// Paginate returns a GORM scope applying offset and limit.
func Paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}

// OrderBy returns a GORM scope ordering by column, with id as a tie-breaker
// so pages stay stable when the column has duplicates.
func OrderBy(column string, desc bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		order := clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Table: clause.CurrentTable, Name: column}, Desc: desc},
		}}
		if column != "id" {
			order.Columns = append(order.Columns, clause.OrderByColumn{
				Column: clause.Column{Table: clause.CurrentTable, Name: "id"},
			})
		}
		return db.Clauses(order)
	}
}

// NameContains returns a case-insensitive substring filter on the name
// column. LIKE wildcards in the input are matched literally.
func NameContains(query string) func(db *gorm.DB) *gorm.DB {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(query))
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escaped+"%")
	}
}
