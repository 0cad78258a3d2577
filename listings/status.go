package listings

import (
	"context"
	"net/http"
	"time"

	"soko/models"
	"soko/mq"
	"soko/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// ApproveListing handles PATCH /api/admin/listings/:listingid/approve.
func (s *Service) ApproveListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.moderate(w, r, ps.ByName("listingid"), models.StatusApproved)
}

// RejectListing handles PATCH /api/admin/listings/:listingid/reject.
func (s *Service) RejectListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.moderate(w, r, ps.ByName("listingid"), models.StatusRejected)
}

func (s *Service) moderate(w http.ResponseWriter, r *http.Request, listingID, to string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	listing, err := s.store.FindByID(ctx, listingID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	now := time.Now().UTC()
	if err := Transition(listing, to, now); err != nil {
		utils.RespondError(w, err)
		return
	}

	set := bson.M{
		"status":     listing.Status,
		"approvedAt": listing.ApprovedAt,
		"updatedAt":  now,
	}
	if err := s.store.UpdateByID(ctx, listingID, set); err != nil {
		utils.RespondError(w, err)
		return
	}

	go mq.Emit("listing-"+to, mq.Event{
		EntityType: "listing", EntityID: listingID, Method: "PATCH", Category: listing.Category,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Listing " + to,
		"data":    listing,
	})
}
