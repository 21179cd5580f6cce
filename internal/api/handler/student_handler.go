package handler

import (
	"errors"
	"net/http"

	"leetboard/internal/app/service"
	"leetboard/internal/common"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	msgStudentNotFound = "Student not found."
	msgReadFailed      = "Error reading data file."
)

type StudentHandler struct {
	queryService *service.QueryService
	log          *zap.Logger
}

func NewStudentHandler(qs *service.QueryService, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{queryService: qs, log: logger}
}

func (h *StudentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/data", h.listStudents)         // GET /data
	r.Get("/student/{roll}", h.getStudent) // GET /student/101
}

func (h *StudentHandler) listStudents(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.queryService.GetAll(r.Context())
	if err != nil {
		h.log.Error("failed to load snapshot", zap.Error(err))
		common.RespondWithError(w, http.StatusInternalServerError, msgReadFailed)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, snapshot)
}

func (h *StudentHandler) getStudent(w http.ResponseWriter, r *http.Request) {
	roll := chi.URLParam(r, "roll")

	record, err := h.queryService.GetByIdentifier(r.Context(), roll)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, msgStudentNotFound)
			return
		}
		h.log.Error("failed to load snapshot", zap.String("roll", roll), zap.Error(err))
		common.RespondWithDomainError(w, err, msgReadFailed)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, record)
}
