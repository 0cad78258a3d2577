package listings

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"soko/apperrors"
	"soko/config"
	"soko/db"
	"soko/globals"
	"soko/imagestore"
	"soko/models"
	"soko/mq"
	"soko/query"
	"soko/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Service owns the listing endpoints.
type Service struct {
	store   *Store
	cleaner *imagestore.Cleaner
	limits  config.Limits
}

func NewService(store *Store, cleaner *imagestore.Cleaner, limits config.Limits) *Service {
	return &Service{store: store, cleaner: cleaner, limits: limits}
}

func requester(r *http.Request) (userID, role string) {
	userID, _ = r.Context().Value(globals.UserIDKey).(string)
	role, _ = r.Context().Value(globals.RoleKey).(string)
	return userID, role
}

// CreateListing handles POST /api/listings. Only approved vendors (or
// admins) may create, and vendors only within their approved categories.
// The listing always starts out pending.
func (s *Service) CreateListing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, role := requester(r)

	var input models.ListingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.authorizeCreate(ctx, userID, role, input.Category); err != nil {
		utils.RespondError(w, err)
		return
	}

	normalized, err := ValidateInput(input, s.limits)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	now := time.Now().UTC()
	listing := models.Listing{
		ListingID:   utils.GetUUID(),
		VendorID:    userID,
		Category:    input.Category,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Location:    input.Location,
		Contact:     input.Contact,
		Images:      CanonicalImages(input.Images),
		Status:      models.StatusPending,
		Details:     normalized,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Insert(ctx, &listing); err != nil {
		utils.RespondError(w, err)
		return
	}

	go mq.Emit("listing-created", mq.Event{
		EntityType: "listing", EntityID: listing.ListingID, Method: "POST", Category: listing.Category,
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Listing created successfully",
		"data":    listing,
	})
}

// GetListings handles GET /api/listings with filter/sort/projection/
// pagination parameters. Non-admin callers only ever see approved listings
// unless they filter their own vendor id.
func (s *Service) GetListings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, role := requester(r)
	spec := query.Build(r.URL.Query(), s.limits)

	if role != models.RoleAdmin {
		if vendor, ok := spec.Filter["vendorid"]; !ok || vendor != userID {
			spec.Filter["status"] = models.StatusApproved
		}
	}

	results, err := s.store.Find(ctx, spec)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Listings retrieved successfully",
		"results": len(results),
		"data":    results,
	})
}

func (s *Service) GetListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	listing, err := s.store.FindByID(ctx, ps.ByName("listingid"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Listing retrieved successfully",
		"data":    listing,
	})
}

// UpdateListing handles PUT /api/listings/:listingid. The category field is
// silently ignored; replaced images are cleaned out of the image store in
// the background after the write is durable.
func (s *Service) UpdateListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, role := requester(r)
	listingID := ps.ByName("listingid")

	existing, err := s.store.FindByID(ctx, listingID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if role != models.RoleAdmin && existing.VendorID != userID {
		utils.RespondError(w, apperrors.ErrForbidden)
		return
	}

	var patch UpdatePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	merged := patch.Apply(*existing, time.Now().UTC())

	normalized, err := ValidateInput(models.ListingInput{
		Category:    merged.Category,
		Title:       merged.Title,
		Description: merged.Description,
		Price:       merged.Price,
		Location:    merged.Location,
		Contact:     merged.Contact,
		Images:      merged.Images,
		Details:     merged.Details,
	}, s.limits)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	merged.Details = normalized
	merged.Images = CanonicalImages(merged.Images)

	set := bson.M{
		"title":              merged.Title,
		"description":        merged.Description,
		"price":              merged.Price,
		"location":           merged.Location,
		"contactInformation": merged.Contact,
		"images":             merged.Images,
		"details":            merged.Details,
		"updatedAt":          merged.UpdatedAt,
	}
	if err := s.store.UpdateByID(ctx, listingID, set); err != nil {
		utils.RespondError(w, err)
		return
	}

	if patch.Images != nil {
		old := existing.Images
		current := merged.Images
		go s.cleaner.CleanUpRemoved(old, current)
	}

	go mq.Emit("listing-updated", mq.Event{
		EntityType: "listing", EntityID: listingID, Method: "PUT", Category: merged.Category,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Listing updated successfully",
		"data":    merged,
	})
}

// DeleteListing handles DELETE /api/listings/:listingid. The record goes
// first; image-store cleanup runs in the background and can never fail the
// request.
func (s *Service) DeleteListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, role := requester(r)
	listingID := ps.ByName("listingid")

	existing, err := s.store.FindByID(ctx, listingID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if role != models.RoleAdmin && existing.VendorID != userID {
		utils.RespondError(w, apperrors.ErrForbidden)
		return
	}

	if err := s.store.DeleteByID(ctx, listingID); err != nil {
		utils.RespondError(w, err)
		return
	}

	go s.cleaner.CleanUp(existing.Images)

	go mq.Emit("listing-deleted", mq.Event{
		EntityType: "listing", EntityID: listingID, Method: "DELETE", Category: existing.Category,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Listing deleted successfully",
	})
}

// authorizeCreate enforces the vendor approval gate on listing creation.
func (s *Service) authorizeCreate(ctx context.Context, userID, role, category string) error {
	if role == models.RoleAdmin {
		return nil
	}
	if role != models.RoleVendor {
		return apperrors.ErrForbidden
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return apperrors.ErrForbidden
	}
	if user.Vendor == nil || user.Vendor.ApprovalStatus != models.VendorApproved {
		return apperrors.ErrForbidden
	}
	for _, c := range user.Vendor.Categories {
		if c == category {
			return nil
		}
	}
	return apperrors.Validation("category", "vendor is not approved for this category")
}
