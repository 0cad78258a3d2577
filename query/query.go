// Package query translates raw request parameters into a bounded, read-only
// query specification. It never talks to the database; the listing store
// applies the spec it produces.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"soko/config"

	"go.mongodb.org/mongo-driver/bson"
)

// Spec is the bounded query produced from raw filters. Filter only ever
// contains whitelisted fields and comparison operators, so applying it can
// never alter write intent.
type Spec struct {
	Filter     bson.M
	Sort       bson.D
	Projection bson.M
	Skip       int64
	Limit      int64
}

// Reserved parameter names that shape the query rather than filter it.
var reserved = map[string]bool{
	"page":   true,
	"limit":  true,
	"sort":   true,
	"fields": true,
}

// publicFields maps the caller-facing field names to their stored names.
// Anything not listed here is silently dropped from filters and sorts.
var publicFields = map[string]string{
	"category":         "category",
	"status":           "status",
	"price":            "price",
	"title":            "title",
	"vendorId":         "vendorid",
	"area":             "location.area",
	"address":          "location.address",
	"createdAt":        "createdAt",
	"updatedAt":        "updatedAt",
	"approvedAt":       "approvedAt",
	"location.area":    "location.area",
	"location.address": "location.address",
}

// rangeOps maps the supported comparison suffixes to mongo operators.
var rangeOps = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
}

// Build assembles a Spec from raw query parameters. Filters accept either
// plain equality (?category=hotel) or bracketed range comparisons
// (?price[gte]=1000). Sort is a comma list with a leading - for descending;
// the default is newest first. Page size is clamped to the configured bound.
func Build(params url.Values, limits config.Limits) Spec {
	spec := Spec{
		Filter: bson.M{},
		Sort:   buildSort(params.Get("sort")),
	}

	for key, values := range params {
		if reserved[key] || len(values) == 0 {
			continue
		}
		field, op := splitKey(key)
		stored, ok := publicFields[field]
		if !ok {
			continue
		}
		value := coerce(values[0])
		if op == "" {
			spec.Filter[stored] = value
			continue
		}
		mongoOp, ok := rangeOps[op]
		if !ok {
			continue
		}
		cond, _ := spec.Filter[stored].(bson.M)
		if cond == nil {
			cond = bson.M{}
		}
		cond[mongoOp] = value
		spec.Filter[stored] = cond
	}

	spec.Projection = buildProjection(params.Get("fields"))

	page, _ := strconv.ParseInt(params.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.ParseInt(params.Get("limit"), 10, 64)
	if limit < 1 {
		limit = limits.PageSizeDefault
	}
	if limit > limits.PageSizeMax {
		limit = limits.PageSizeMax
	}
	spec.Limit = limit
	spec.Skip = (page - 1) * limit

	return spec
}

// splitKey parses "price[gte]" into ("price", "gte"); plain keys return an
// empty operator.
func splitKey(key string) (field, op string) {
	open := strings.IndexByte(key, '[')
	if open == -1 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

func buildSort(raw string) bson.D {
	if raw == "" {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	var sort bson.D
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dir := 1
		if strings.HasPrefix(part, "-") {
			dir = -1
			part = part[1:]
		}
		stored, ok := publicFields[part]
		if !ok {
			continue
		}
		sort = append(sort, bson.E{Key: stored, Value: dir})
	}
	if len(sort) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return sort
}

func buildProjection(raw string) bson.M {
	if raw == "" {
		return nil
	}
	projection := bson.M{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if stored, ok := publicFields[part]; ok {
			projection[stored] = 1
		}
	}
	if len(projection) == 0 {
		return nil
	}
	return projection
}

// coerce turns numeric-looking strings into numbers so range comparisons on
// price behave numerically.
func coerce(s string) any {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	if s == "true" {
		return true
	}
	if s == "false" {
		return false
	}
	return s
}
