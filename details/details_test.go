package details

import (
	"testing"
	"time"

	"soko/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validPayload(category string) map[string]any {
	switch category {
	case models.CategoryHotel:
		return map[string]any{
			"roomTypes": []any{
				map[string]any{
					"name":          "Deluxe",
					"pricePerNight": 25000.0,
					"capacity":      2.0,
					"amenities":     []any{"wifi", "ac"},
				},
			},
			"checkInTime":  "14:00",
			"checkOutTime": "12:00",
		}
	case models.CategoryShortlet:
		return map[string]any{
			"pricePerNight": 15000.0,
			"maxGuests":     4.0,
			"amenities":     []any{"wifi"},
		}
	case models.CategoryRestaurant:
		return map[string]any{
			"cuisines":     []any{"nigerian", "continental"},
			"openingHours": "09:00-21:00",
		}
	case models.CategoryServices:
		return map[string]any{
			"priceType":    "Hourly",
			"availability": []any{"Mon-Fri"},
		}
	case models.CategoryEvent:
		return map[string]any{
			"eventDate":   "2026-12-24T18:00:00Z",
			"venue":       "Eko Convention Centre",
			"ticketPrice": 5000.0,
			"capacity":    300.0,
		}
	}
	return nil
}

func TestValidateAcceptsAllCategories(t *testing.T) {
	for _, category := range models.Categories() {
		t.Run(category, func(t *testing.T) {
			normalized, errs := Validate(category, validPayload(category))
			require.Empty(t, errs)
			require.NotNil(t, normalized)
		})
	}
}

func TestValidateMissingRequiredField(t *testing.T) {
	tests := []struct {
		category string
		remove   string
		wantPath string
	}{
		{models.CategoryHotel, "roomTypes", "details.roomTypes"},
		{models.CategoryHotel, "checkInTime", "details.checkInTime"},
		{models.CategoryHotel, "checkOutTime", "details.checkOutTime"},
		{models.CategoryShortlet, "pricePerNight", "details.pricePerNight"},
		{models.CategoryShortlet, "amenities", "details.amenities"},
		{models.CategoryRestaurant, "cuisines", "details.cuisines"},
		{models.CategoryRestaurant, "openingHours", "details.openingHours"},
		{models.CategoryServices, "priceType", "details.priceType"},
		{models.CategoryServices, "availability", "details.availability"},
		{models.CategoryEvent, "eventDate", "details.eventDate"},
		{models.CategoryEvent, "venue", "details.venue"},
		{models.CategoryEvent, "ticketPrice", "details.ticketPrice"},
		{models.CategoryEvent, "capacity", "details.capacity"},
	}
	for _, tt := range tests {
		t.Run(tt.category+"/"+tt.remove, func(t *testing.T) {
			payload := validPayload(tt.category)
			delete(payload, tt.remove)

			_, errs := Validate(tt.category, payload)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantPath, errs[0].Field)
		})
	}
}

func TestValidateInvalidCategoryShortCircuits(t *testing.T) {
	_, errs := Validate("spa", map[string]any{"anything": true})
	require.Len(t, errs, 1)
	assert.Equal(t, "category", errs[0].Field)
}

func TestValidateNilDetailsShortCircuits(t *testing.T) {
	_, errs := Validate(models.CategoryHotel, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "details", errs[0].Field)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	_, errs := Validate(models.CategoryEvent, map[string]any{})
	require.Len(t, errs, 4)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{
		"details.eventDate", "details.venue", "details.ticketPrice", "details.capacity",
	}, fields)
}

func TestValidateRoomTypeErrorsCarryIndexedPaths(t *testing.T) {
	payload := map[string]any{
		"roomTypes": []any{
			map[string]any{"name": "Deluxe", "pricePerNight": 25000.0, "capacity": 2.0},
			map[string]any{"name": "Penthouse", "capacity": 2.0},
		},
		"checkInTime":  "14:00",
		"checkOutTime": "12:00",
	}

	_, errs := Validate(models.CategoryHotel, payload)
	require.Len(t, errs, 2)

	fields := []string{errs[0].Field, errs[1].Field}
	assert.ElementsMatch(t, []string{
		"details.roomTypes[1].name",
		"details.roomTypes[1].pricePerNight",
	}, fields)
}

func TestValidateNormalizesEnumsToLowercase(t *testing.T) {
	normalized, errs := Validate(models.CategoryServices, map[string]any{
		"priceType":    "NEGOTIABLE",
		"availability": []any{"Sat", "Sun"},
	})
	require.Empty(t, errs)
	assert.Equal(t, "negotiable", normalized["priceType"])
	assert.Equal(t, []string{"Sat", "Sun"}, normalized["availability"])
}

func TestValidateEventDateForms(t *testing.T) {
	payload := validPayload(models.CategoryEvent)
	payload["eventDate"] = "2027-01-15"

	normalized, errs := Validate(models.CategoryEvent, payload)
	require.Empty(t, errs)

	when, ok := normalized["eventDate"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2027, when.Year())
}

func TestValidateAcceptsBSONNumericTypes(t *testing.T) {
	normalized, errs := Validate(models.CategoryShortlet, map[string]any{
		"pricePerNight": int32(15000),
		"maxGuests":     int64(4),
		"amenities":     []any{"wifi"},
	})
	require.Empty(t, errs)
	assert.Equal(t, float64(15000), normalized["pricePerNight"])
}

func TestValidateAcceptsBSONDocumentShapes(t *testing.T) {
	t.Run("hotel", func(t *testing.T) {
		normalized, errs := Validate(models.CategoryHotel, map[string]any{
			"roomTypes": primitive.A{
				primitive.D{
					{Key: "name", Value: "Deluxe"},
					{Key: "pricePerNight", Value: int64(25000)},
					{Key: "capacity", Value: int32(2)},
					{Key: "amenities", Value: primitive.A{"wifi", "ac"}},
				},
			},
			"checkInTime":  "14:00",
			"checkOutTime": "12:00",
		})
		require.Empty(t, errs)

		rooms, ok := normalized["roomTypes"].([]map[string]any)
		require.True(t, ok)
		require.Len(t, rooms, 1)
		assert.Equal(t, "deluxe", rooms[0]["name"])
		assert.Equal(t, float64(25000), rooms[0]["pricePerNight"])
		assert.Equal(t, []string{"wifi", "ac"}, rooms[0]["amenities"])
	})

	t.Run("restaurant with primitive.M", func(t *testing.T) {
		_, errs := Validate(models.CategoryRestaurant, primitive.M{
			"cuisines":     primitive.A{"nigerian"},
			"openingHours": "09:00-21:00",
		})
		require.Empty(t, errs)
	})

	t.Run("event with bson datetime", func(t *testing.T) {
		payload := validPayload(models.CategoryEvent)
		eventDate := time.Date(2027, 3, 1, 18, 0, 0, 0, time.UTC)
		payload["eventDate"] = primitive.NewDateTimeFromTime(eventDate)

		normalized, errs := Validate(models.CategoryEvent, payload)
		require.Empty(t, errs)
		assert.Equal(t, eventDate, normalized["eventDate"])
	})
}
