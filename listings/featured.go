package listings

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"soko/models"
	"soko/query"
	"soko/rdx"
	"soko/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const featuredLimit = 6

// GetFeatured handles GET /api/featured/:category. It serves a
// daily-rotating window of approved, fully-populated listings, cached in
// Redis so the homepage does not hammer the collection.
func (s *Service) GetFeatured(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	category := ps.ByName("category")
	if !models.IsValidCategory(category) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	cacheKey := "featured:" + category
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := featuredFilter(category)
	count, err := s.store.Count(ctx, filter)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var results []models.Listing
	if count > 0 {
		// Rotate the window daily so every approved listing gets a turn.
		dayOfYear := time.Now().Unix() / (60 * 60 * 24)
		skip := (dayOfYear * featuredLimit) % count

		results, err = s.store.Find(ctx, query.Spec{
			Filter: filter,
			Sort:   bson.D{{Key: "createdAt", Value: -1}},
			Skip:   skip,
			Limit:  featuredLimit,
		})
		if err != nil {
			utils.RespondError(w, err)
			return
		}

		// Wrap around when the window runs off the end of the collection.
		if int64(len(results)) < featuredLimit && count > int64(len(results)) {
			more, err := s.store.Find(ctx, query.Spec{
				Filter: filter,
				Sort:   bson.D{{Key: "createdAt", Value: -1}},
				Limit:  featuredLimit - int64(len(results)),
			})
			if err == nil {
				results = append(results, more...)
			}
		}
	}
	if results == nil {
		results = []models.Listing{}
	}

	payload := utils.M{
		"message": "Featured listings retrieved successfully",
		"results": len(results),
		"data":    results,
	}
	body, err := json.Marshal(payload)
	if err == nil {
		if err := rdx.RdxSetWithTTL(cacheKey, string(body), time.Hour); err != nil {
			log.Printf("featured cache write failed: %v", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}

// featuredFilter matches approved listings complete enough to showcase: at
// least one image, a reachable contact, and a full address.
func featuredFilter(category string) bson.M {
	return bson.M{
		"category": category,
		"status":   models.StatusApproved,
		"images.0": bson.M{"$exists": true},
		"$or": []bson.M{
			{"contactInformation.phone": bson.M{"$exists": true, "$nin": []any{nil, ""}}},
			{"contactInformation.whatsapp": bson.M{"$exists": true, "$nin": []any{nil, ""}}},
		},
		"location.address": bson.M{"$exists": true, "$nin": []any{nil, ""}},
		"location.area":    bson.M{"$exists": true, "$nin": []any{nil, ""}},
	}
}
