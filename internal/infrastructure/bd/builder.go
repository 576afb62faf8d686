package db

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"ppe-tracker/pkg/types"
)

// ApplyListParams adds the whitelisted filter[...] and sort[...] parameters
// and, when requested, LIMIT/OFFSET. Unknown fields are ignored.
// Comma separated filter values become IN lists.
func ApplyListParams(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	builder = ApplyFilters(builder, filter, allowedMap)

	for jsonField, dir := range filter.Sort {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		sqlDir := "ASC"
		if strings.ToLower(dir) == "desc" {
			sqlDir = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s %s", dbCol, sqlDir))
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			builder = builder.Limit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			builder = builder.Offset(uint64(filter.Offset))
		}
	}

	return builder
}

// ApplyFilters adds only the WHERE part of ApplyListParams, for count queries.
func ApplyFilters(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	for jsonField, val := range filter.Filter {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}

		if s, ok := val.(string); ok && strings.Contains(s, ",") {
			builder = builder.Where(sq.Eq{dbCol: strings.Split(s, ",")})
		} else {
			builder = builder.Where(sq.Eq{dbCol: val})
		}
	}
	return builder
}

// ApplySearch adds a case-insensitive substring match over columns.
func ApplySearch(builder sq.SelectBuilder, search string, columns ...string) sq.SelectBuilder {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return builder
	}
	pattern := "%" + search + "%"
	or := sq.Or{}
	for _, col := range columns {
		or = append(or, sq.ILike{col: pattern})
	}
	return builder.Where(or)
}
