// Package details validates and normalizes the category-specific payload
// attached to a listing. Each of the five categories has its own required
// shape; the dispatch table is built once and never mutated, so it is safe
// for concurrent readers.
package details

import (
	"fmt"
	"strings"
	"time"

	"soko/apperrors"
	"soko/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type checker func(c *collector, d map[string]any) map[string]any

// checkers maps each category to its shape check. Read-only after init.
var checkers = map[string]checker{
	models.CategoryHotel:      checkHotel,
	models.CategoryShortlet:   checkShortlet,
	models.CategoryRestaurant: checkRestaurant,
	models.CategoryServices:   checkServices,
	models.CategoryEvent:      checkEvent,
}

// Allowed enum values, matched case-insensitively and stored lowercase.
var (
	roomClasses = []string{"standard", "deluxe", "suite", "executive", "single", "double", "twin", "family"}
	priceTypes  = []string{"fixed", "hourly", "negotiable"}
)

// Validate checks details against the schema for category and returns the
// normalized payload. All field errors are collected under the details.
// prefix, except the structural prerequisites (unknown category, missing
// details) which short-circuit since nothing further is checkable.
func Validate(category string, details map[string]any) (map[string]any, []apperrors.FieldError) {
	check, ok := checkers[category]
	if !ok {
		return nil, []apperrors.FieldError{{Field: "category", Message: "invalid listing category"}}
	}
	if details == nil {
		return nil, []apperrors.FieldError{{Field: "details", Message: "details are required for this category"}}
	}

	c := &collector{}
	normalized := check(c, details)
	if len(c.errs) > 0 {
		return nil, c.errs
	}
	return normalized, nil
}

// collector accumulates field errors so every problem surfaces in one pass.
type collector struct {
	errs []apperrors.FieldError
}

func (c *collector) add(path, msg string) {
	c.errs = append(c.errs, apperrors.FieldError{Field: "details." + path, Message: msg})
}

func checkHotel(c *collector, d map[string]any) map[string]any {
	out := map[string]any{}

	rooms, ok := asSlice(d["roomTypes"])
	if !ok || len(rooms) == 0 {
		c.add("roomTypes", "at least one room type is required")
	} else {
		normRooms := make([]map[string]any, 0, len(rooms))
		for i, raw := range rooms {
			room, ok := asMap(raw)
			if !ok {
				c.add(fmt.Sprintf("roomTypes[%d]", i), "must be an object")
				continue
			}
			normRooms = append(normRooms, checkRoomType(c, room, i))
		}
		out["roomTypes"] = normRooms
	}

	out["checkInTime"] = requireString(c, d, "checkInTime")
	out["checkOutTime"] = requireString(c, d, "checkOutTime")
	return out
}

func checkRoomType(c *collector, room map[string]any, i int) map[string]any {
	path := func(f string) string { return fmt.Sprintf("roomTypes[%d].%s", i, f) }
	out := map[string]any{}

	if name, ok := asString(room["name"]); ok && name != "" {
		if norm, ok := matchEnum(name, roomClasses); ok {
			out["name"] = norm
		} else {
			c.add(path("name"), "must be one of "+strings.Join(roomClasses, ", "))
		}
	} else {
		c.add(path("name"), "room name is required")
	}

	if price, ok := asNumber(room["pricePerNight"]); ok && price > 0 {
		out["pricePerNight"] = price
	} else {
		c.add(path("pricePerNight"), "a positive price per night is required")
	}

	if capacity, ok := asNumber(room["capacity"]); ok && capacity > 0 {
		out["capacity"] = capacity
	} else {
		c.add(path("capacity"), "a positive capacity is required")
	}

	out["amenities"] = optionalStringList(c, room, "amenities", path("amenities"))
	return out
}

func checkShortlet(c *collector, d map[string]any) map[string]any {
	out := map[string]any{}

	if price, ok := asNumber(d["pricePerNight"]); ok && price > 0 {
		out["pricePerNight"] = price
	} else {
		c.add("pricePerNight", "a positive price per night is required")
	}

	if raw, present := d["maxGuests"]; present {
		if guests, ok := asNumber(raw); ok && guests > 0 {
			out["maxGuests"] = guests
		} else {
			c.add("maxGuests", "must be a positive number")
		}
	}

	if list, ok := stringList(d["amenities"]); ok {
		out["amenities"] = list
	} else {
		c.add("amenities", "a list of amenities is required")
	}
	return out
}

func checkRestaurant(c *collector, d map[string]any) map[string]any {
	out := map[string]any{}

	if list, ok := stringList(d["cuisines"]); ok {
		out["cuisines"] = list
	} else {
		c.add("cuisines", "a list of cuisines is required")
	}

	out["openingHours"] = requireString(c, d, "openingHours")

	accepts := false
	if raw, present := d["acceptsReservations"]; present {
		b, ok := raw.(bool)
		if !ok {
			c.add("acceptsReservations", "must be true or false")
		}
		accepts = b
	}
	out["acceptsReservations"] = accepts

	if raw, present := d["maxGuestsPerReservation"]; present {
		if guests, ok := asNumber(raw); ok && guests > 0 {
			out["maxGuestsPerReservation"] = guests
		} else {
			c.add("maxGuestsPerReservation", "must be a positive number")
		}
	}
	return out
}

func checkServices(c *collector, d map[string]any) map[string]any {
	out := map[string]any{}

	if pt, ok := asString(d["priceType"]); ok && pt != "" {
		if norm, ok := matchEnum(pt, priceTypes); ok {
			out["priceType"] = norm
		} else {
			c.add("priceType", "must be one of "+strings.Join(priceTypes, ", "))
		}
	} else {
		c.add("priceType", "price type is required")
	}

	if raw, present := d["price"]; present {
		if price, ok := asNumber(raw); ok && price >= 0 {
			out["price"] = price
		} else {
			c.add("price", "must be a non-negative number")
		}
	}

	if list, ok := stringList(d["availability"]); ok {
		out["availability"] = list
	} else {
		c.add("availability", "an availability list is required")
	}
	return out
}

func checkEvent(c *collector, d map[string]any) map[string]any {
	out := map[string]any{}

	if when, ok := asDate(d["eventDate"]); ok {
		out["eventDate"] = when
	} else {
		c.add("eventDate", "a valid event date is required")
	}

	out["venue"] = requireString(c, d, "venue")

	if price, ok := asNumber(d["ticketPrice"]); ok && price >= 0 {
		out["ticketPrice"] = price
	} else {
		c.add("ticketPrice", "a non-negative ticket price is required")
	}

	if capacity, ok := asNumber(d["capacity"]); ok && capacity > 0 {
		out["capacity"] = capacity
	} else {
		c.add("capacity", "a positive capacity is required")
	}
	return out
}

// --- coercion helpers ---

func requireString(c *collector, d map[string]any, field string) string {
	s, ok := asString(d[field])
	if !ok || strings.TrimSpace(s) == "" {
		c.add(field, field+" is required")
		return ""
	}
	return strings.TrimSpace(s)
}

func optionalStringList(c *collector, d map[string]any, field, path string) []string {
	raw, present := d[field]
	if !present {
		return []string{}
	}
	list, ok := stringList(raw)
	if !ok {
		c.add(path, "must be a list of strings")
		return []string{}
	}
	return list
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asNumber accepts the numeric types produced by JSON and BSON decoding.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// asSlice accepts both JSON-decoded and BSON-decoded array shapes.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case primitive.A:
		return []any(s), true
	}
	return nil, false
}

// asMap accepts both JSON-decoded and BSON-decoded document shapes.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case primitive.M:
		return map[string]any(m), true
	case primitive.D:
		return m.Map(), true
	}
	return nil, false
}

func stringList(v any) ([]string, bool) {
	if list, ok := v.([]string); ok {
		return list, true
	}
	raw, ok := asSlice(v)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// asDate accepts time.Time, a BSON datetime, or a string in RFC 3339 /
// date-only form.
func asDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d.UTC(), true
	case primitive.DateTime:
		return d.Time().UTC(), true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, d); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

// matchEnum matches s against allowed values case-insensitively and returns
// the lowercase canonical form.
func matchEnum(s string, allowed []string) (string, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, a := range allowed {
		if norm == a {
			return norm, true
		}
	}
	return "", false
}
