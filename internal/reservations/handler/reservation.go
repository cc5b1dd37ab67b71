package handler

import (
	"hotelbooking/internal/reservations/service"
	"hotelbooking/pkg/auth"
	httputil "hotelbooking/pkg/http"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateReservationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	view, err := h.service.CreateReservation(r.Context(), auth.FromContext(r.Context()), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, view); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) ListOwn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	views, err := h.service.ListOwnReservations(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		h.writeError(w, "ListOwn", err)
		return
	}

	if err := httputil.WriteSuccess(w, views); err != nil {
		h.log.Error("failed to write success response", "handler", "ListOwn", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) DeleteOwn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.DeleteOwnReservation(r.Context(), auth.FromContext(r.Context()), id); err != nil {
		h.writeError(w, "DeleteOwn", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) ListForUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userId")

	views, err := h.service.ListReservationsForUser(r.Context(), auth.FromContext(r.Context()), userID)
	if err != nil {
		h.writeError(w, "ListForUser", err)
		return
	}

	if err := httputil.WriteSuccess(w, views); err != nil {
		h.log.Error("failed to write success response", "handler", "ListForUser", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.DeleteReservation(r.Context(), auth.FromContext(r.Context()), id); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/client/reservations", h.Create)
	router.GET("/api/client/reservations", h.ListOwn)
	router.DELETE("/api/client/reservations/:id", h.DeleteOwn)

	router.GET("/api/manager/reservations/:userId", h.ListForUser)
	router.DELETE("/api/manager/reservations/:id", h.Delete)
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
