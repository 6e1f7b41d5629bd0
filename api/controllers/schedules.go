package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clubmate-app/clubmate-backend/api/responses"
	"github.com/clubmate-app/clubmate-backend/api/validators"
	"github.com/clubmate-app/clubmate-backend/internal/schedules"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
)

type scheduleRequest struct {
	Title    string    `json:"title" validate:"required,min=1,max=200"`
	Place    *string   `json:"place,omitempty" validate:"omitempty,max=300"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required"`
}

func (r scheduleRequest) toInput() schedules.ScheduleInput {
	return schedules.ScheduleInput{
		Title:    r.Title,
		Place:    r.Place,
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
	}
}

type checklistItemRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

type checklistDoneRequest struct {
	Done *bool `json:"done" validate:"required"`
}

// CreateSchedule adds an event to a club's calendar. Host or manager only.
func CreateSchedule(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		clubID, err := pathUUID(chi.URLParam(r, "clubID"), "club id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req scheduleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		schedule, err := svc.CreateSchedule(r.Context(), caller, clubID, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, schedule)
	}
}

// UpdateSchedule replaces an event's fields. Host or manager only.
func UpdateSchedule(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		scheduleID, err := pathUUID(chi.URLParam(r, "scheduleID"), "schedule id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req scheduleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		schedule, err := svc.UpdateSchedule(r.Context(), caller, scheduleID, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, schedule)
	}
}

// DeleteSchedule removes an event and its checklist. Host or manager only.
func DeleteSchedule(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		scheduleID, err := pathUUID(chi.URLParam(r, "scheduleID"), "schedule id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteSchedule(r.Context(), caller, scheduleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ListSchedules returns a club's events ordered by start time.
func ListSchedules(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		clubID, err := pathUUID(chi.URLParam(r, "clubID"), "club id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListSchedules(r.Context(), caller, clubID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AddChecklistItem appends a checklist entry to an event. Host or manager only.
func AddChecklistItem(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		scheduleID, err := pathUUID(chi.URLParam(r, "scheduleID"), "schedule id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req checklistItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.AddChecklistItem(r.Context(), caller, scheduleID, req.Content)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// SetChecklistItemDone toggles a checklist entry. Host or manager only.
func SetChecklistItemDone(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(chi.URLParam(r, "itemID"), "checklist item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req checklistDoneRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.SetChecklistItemDone(r.Context(), caller, itemID, *req.Done)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// ListChecklist returns an event's checklist. Any club member may read it.
func ListChecklist(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule service unavailable"))
			return
		}
		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		scheduleID, err := pathUUID(chi.URLParam(r, "scheduleID"), "schedule id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListChecklist(r.Context(), caller, scheduleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
