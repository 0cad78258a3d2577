// Package admin holds the moderation endpoints: vendor approval and the
// listing review queue. Every handler here sits behind the admin role gate.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"soko/apperrors"
	"soko/db"
	"soko/mailer"
	"soko/models"
	"soko/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Service struct {
	mail mailer.Mailer
}

func NewService(mail mailer.Mailer) *Service {
	return &Service{mail: mail}
}

// ApproveVendor handles PATCH /api/admin/vendors/:vendorid/approve. The
// notification email is best-effort and never blocks the response.
func (s *Service) ApproveVendor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := s.findVendor(ctx, ps.ByName("vendorid"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	now := time.Now().UTC()
	user.Vendor.ApprovalStatus = models.VendorApproved
	user.Vendor.ApprovedAt = &now
	user.IsVerified = true
	user.IsActive = true

	set := bson.M{
		"vendor.approvalStatus": user.Vendor.ApprovalStatus,
		"vendor.approvedAt":     user.Vendor.ApprovedAt,
		"isVerified":            true,
		"isActive":              true,
		"updatedAt":             now,
	}
	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": user.UserID}, bson.M{"$set": set}); err != nil {
		utils.RespondError(w, apperrors.Storage("approveVendor", err))
		return
	}

	subject, html := mailer.VendorApprovedBody(user.FirstName)
	mailer.SendAsync(s.mail, user.Email, subject, html)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Vendor approved successfully",
		"data":    user,
	})
}

// RejectVendor handles PATCH /api/admin/vendors/:vendorid/reject with an
// optional reason in the body.
func (s *Service) RejectVendor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	user, err := s.findVendor(ctx, ps.ByName("vendorid"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	now := time.Now().UTC()
	user.Vendor.ApprovalStatus = models.VendorRejected
	user.Vendor.ApprovedAt = nil
	user.IsVerified = false
	user.IsActive = false

	set := bson.M{
		"vendor.approvalStatus": user.Vendor.ApprovalStatus,
		"vendor.approvedAt":     nil,
		"isVerified":            false,
		"isActive":              false,
		"updatedAt":             now,
	}
	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": user.UserID}, bson.M{"$set": set}); err != nil {
		utils.RespondError(w, apperrors.Storage("rejectVendor", err))
		return
	}

	subject, html := mailer.VendorRejectedBody(user.FirstName, body.Reason)
	mailer.SendAsync(s.mail, user.Email, subject, html)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Vendor rejected",
		"data":    user,
	})
}

// GetPendingVendors handles GET /api/admin/vendors/pending.
func (s *Service) GetPendingVendors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.UserCollection.Find(ctx, bson.M{
		"role":                  models.RoleVendor,
		"vendor.approvalStatus": models.VendorPending,
	})
	if err != nil {
		utils.RespondError(w, apperrors.Storage("pendingVendors", err))
		return
	}
	defer cursor.Close(ctx)

	vendors := []models.User{}
	if err := cursor.All(ctx, &vendors); err != nil {
		utils.RespondError(w, apperrors.Storage("pendingVendors", err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Pending vendors retrieved successfully",
		"results": len(vendors),
		"data":    vendors,
	})
}

func (s *Service) findVendor(ctx context.Context, vendorID string) (*models.User, error) {
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": vendorID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Storage("findVendor", err)
	}
	if user.Role != models.RoleVendor {
		return nil, apperrors.ErrNotFound
	}
	if user.Vendor == nil {
		return nil, apperrors.Validation("vendor", "vendor profile data missing")
	}
	return &user, nil
}
