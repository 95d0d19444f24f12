package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hearthloan/prequal/internal/application/dto"
	"github.com/hearthloan/prequal/internal/application/usecase"
	"github.com/hearthloan/prequal/pkg/auth"
)

// Handler serves the /v1 API. Every route expects claims on the context.
type Handler struct {
	uc     usecase.Set
	logger *slog.Logger
}

func NewHandler(uc usecase.Set, logger *slog.Logger) *Handler {
	return &Handler{uc: uc, logger: logger}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/prequal", func(r chi.Router) {
		r.Post("/calculate", h.prequalify)
		r.Get("/history", h.prequalHistory)
		r.Post("/schedule", h.schedule)
	})
	r.Get("/profile", h.getProfile)
	r.Put("/profile", h.updateProfile)
	r.Get("/products", h.listProducts)
	r.Route("/applications", func(r chi.Router) {
		r.Post("/", h.createApplication)
		r.Get("/", h.listApplications)
		r.Get("/{id}", h.getApplication)
		r.Put("/{id}/submit", h.submitApplication)
	})
	r.Post("/assistant/intent", h.classifyIntent)
}

func (h *Handler) prequalify(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	req, err := decodeBody[dto.PrequalifyRequest](w, r, "prequalify")
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	req.UserID = userID

	resp, err := h.uc.Prequalify.Execute(r.Context(), req)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) prequalHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	resp, err := h.uc.PrequalHistory.Execute(r.Context(), dto.PrequalHistoryRequest{UserID: userID})
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) schedule(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[dto.ScheduleRequest](w, r, "schedule")
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	resp, err := h.uc.Schedule.Execute(r.Context(), req)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	resp, err := h.uc.GetProfile.Execute(r.Context(), dto.GetProfileRequest{UserID: userID})
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	req, err := decodeBody[dto.UpdateProfileRequest](w, r, "profile")
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	req.UserID = userID

	resp, err := h.uc.UpdateProfile.Execute(r.Context(), req)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	req, err := parseProductQuery(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	resp, err := h.uc.ListProducts.Execute(r.Context(), req)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) createApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	req, err := decodeBody[dto.CreateApplicationRequest](w, r, "application")
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	req.UserID = userID

	resp, err := h.uc.CreateApplication.Execute(r.Context(), req)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	resp, err := h.uc.ListApplications.Execute(r.Context(), dto.ListApplicationsRequest{UserID: userID})
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	appID, err := pathUUID(r, "id")
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	resp, err := h.uc.GetApplication.Execute(r.Context(), dto.GetApplicationRequest{UserID: userID, ApplicationID: appID})
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) submitApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	appID, err := pathUUID(r, "id")
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	resp, err := h.uc.SubmitApplication.Execute(r.Context(), dto.SubmitApplicationRequest{UserID: userID, ApplicationID: appID})
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) classifyIntent(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[dto.ClassifyIntentRequest](w, r, "intent")
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	resp, err := h.uc.ClassifyIntent.Execute(r.Context(), req)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// caller returns the authenticated user, writing 401 when absent.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || claims.UserID == uuid.Nil {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return uuid.Nil, false
	}
	return claims.UserID, true
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a UUID", errBadRequest, name)
	}
	return id, nil
}

func parseProductQuery(r *http.Request) (dto.ListProductsRequest, error) {
	var req dto.ListProductsRequest
	q := r.URL.Query()

	if v := q.Get("credit_score"); v != "" {
		score, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%w: credit_score must be an integer", errBadRequest)
		}
		req.CreditScore = &score
	}
	for name, dst := range map[string]**decimal.Decimal{
		"loan_amount":  &req.LoanAmount,
		"down_payment": &req.DownPayment,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return req, fmt.Errorf("%w: %s must be a number", errBadRequest, name)
		}
		*dst = &d
	}
	return req, nil
}
