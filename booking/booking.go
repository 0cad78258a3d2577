// Package booking implements booking requests against vendors. The payload
// is category-tagged like listings but its details stay free-form; only the
// category itself is validated.
package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"soko/apperrors"
	"soko/db"
	"soko/globals"
	"soko/models"
	"soko/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type createInput struct {
	VendorID  string         `json:"vendorId"`
	ListingID string         `json:"listingId"`
	Category  string         `json:"category"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details"`
}

// CreateBooking handles POST /api/bookings.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, _ := r.Context().Value(globals.UserIDKey).(string)

	var input createInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ve := &apperrors.ValidationError{}
	if !models.IsValidCategory(input.Category) {
		ve.Add("category", "invalid booking category")
	}
	if input.VendorID == "" {
		ve.Add("vendorId", "vendor is required")
	}
	if input.Details == nil {
		ve.Add("details", "details are required")
	}
	if err := ve.OrNil(); err != nil {
		utils.RespondError(w, err)
		return
	}

	now := time.Now().UTC()
	b := models.Booking{
		BookingID: utils.GetUUID(),
		UserID:    userID,
		VendorID:  input.VendorID,
		ListingID: input.ListingID,
		Category:  input.Category,
		Status:    models.BookingPending,
		Message:   input.Message,
		Details:   input.Details,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.BookingsCollection.InsertOne(ctx, b); err != nil {
		utils.RespondError(w, apperrors.Storage("createBooking", err))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Booking request created successfully",
		"data":    b,
	})
}

// GetMyBookings handles GET /api/bookings/mine, returning the requester's
// bookings newest first.
func GetMyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, _ := r.Context().Value(globals.UserIDKey).(string)

	cursor, err := db.BookingsCollection.Find(ctx, bson.M{"userid": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.RespondError(w, apperrors.Storage("myBookings", err))
		return
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		utils.RespondError(w, apperrors.Storage("myBookings", err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Bookings retrieved successfully",
		"results": len(bookings),
		"data":    bookings,
	})
}

// DecideBooking handles PATCH /api/bookings/:bookingid, letting the vendor
// the booking was addressed to approve or reject it, or the requesting user
// cancel it.
func DecideBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	role, _ := r.Context().Value(globals.RoleKey).(string)
	bookingID := ps.ByName("bookingid")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var b models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondError(w, apperrors.ErrNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, apperrors.Storage("decideBooking", err))
		return
	}

	if err := authorizeDecision(&b, userID, role, body.Status); err != nil {
		utils.RespondError(w, err)
		return
	}

	now := time.Now().UTC()
	_, err = db.BookingsCollection.UpdateOne(ctx,
		bson.M{"bookingid": bookingID},
		bson.M{"$set": bson.M{"status": body.Status, "updatedAt": now}},
	)
	if err != nil {
		utils.RespondError(w, apperrors.Storage("decideBooking", err))
		return
	}
	b.Status = body.Status
	b.UpdatedAt = now

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Booking " + body.Status,
		"data":    b,
	})
}

func authorizeDecision(b *models.Booking, userID, role, target string) error {
	if b.Status != models.BookingPending {
		return apperrors.Validation("status", "only pending bookings can change status")
	}
	switch target {
	case models.BookingApproved, models.BookingRejected:
		if role != models.RoleAdmin && b.VendorID != userID {
			return apperrors.ErrForbidden
		}
	case models.BookingCancelled:
		if b.UserID != userID {
			return apperrors.ErrForbidden
		}
	default:
		return apperrors.Validation("status", "unknown target status")
	}
	return nil
}
