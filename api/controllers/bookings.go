package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shareloop/shareloop-backend/api/middleware"
	"github.com/shareloop/shareloop-backend/api/responses"
	"github.com/shareloop/shareloop-backend/api/validators"
	"github.com/shareloop/shareloop-backend/internal/bookings"
	"github.com/shareloop/shareloop-backend/pkg/enums"
	pkgerrors "github.com/shareloop/shareloop-backend/pkg/errors"
	"github.com/shareloop/shareloop-backend/pkg/logger"
)

// BookingCreate opens a booking request for an item.
func BookingCreate(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		bookerID := middleware.UserIDFromContext(r.Context())

		var payload bookings.CreateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.Create(r.Context(), bookerID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, booking)
	}
}

// BookingResolve approves or rejects a waiting booking; owner only.
func BookingResolve(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		ownerID := middleware.UserIDFromContext(r.Context())

		bookingID, err := validators.ParsePathID(chi.URLParam(r, "bookingId"), "bookingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		approved, err := validators.ParseQueryBool(r, "approved")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.Resolve(r.Context(), ownerID, bookingID, approved)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, booking)
	}
}

// BookingGet returns one booking to its booker or the item owner.
func BookingGet(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		requesterID := middleware.UserIDFromContext(r.Context())

		bookingID, err := validators.ParsePathID(chi.URLParam(r, "bookingId"), "bookingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.Get(r.Context(), requesterID, bookingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, booking)
	}
}

func bookingListParams(r *http.Request) (bookings.ListParams, error) {
	state, err := enums.ParseBookingState(r.URL.Query().Get("state"))
	if err != nil {
		return bookings.ListParams{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown booking state filter").WithDetails(map[string]any{"field": "state"})
	}

	page, err := parsePage(r)
	if err != nil {
		return bookings.ListParams{}, err
	}

	return bookings.ListParams{
		SubjectID: middleware.UserIDFromContext(r.Context()),
		State:     state,
		Page:      page,
	}, nil
}

// BookingListForBooker lists the caller's own bookings, newest start first.
func BookingListForBooker(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		params, err := bookingListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForBooker(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// BookingListForOwner lists bookings against any of the caller's items.
func BookingListForOwner(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		params, err := bookingListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForOwner(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}
