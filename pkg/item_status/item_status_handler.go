package item_status

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/milplan/milplan/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ItemStatusDTO struct {
	ID            int64  `json:"id"`
	DesignationAr string `json:"designationAr"`
	DesignationEn string `json:"designationEn"`
	DesignationFr string `json:"designationFr"`
	Category      string `json:"category,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new item status")

	var dto ItemStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), dtoToStatus(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, statusToDTO(created))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid item status id", err.Error())
		return
	}
	status, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, statusToDTO(status))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "id")
	statuses, total, err := h.service.List(r.Context(), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.NewPage(statusesToDTOs(statuses), total, page))
}

func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := ParseCategory(mux.Vars(r)["category"])
	if !ok {
		rest.WriteError(w, http.StatusBadRequest, "unknown status category: "+mux.Vars(r)["category"], "")
		return
	}
	statuses, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, statusesToDTOs(statuses))
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "designationFr")
	statuses, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, statusesToDTOs(statuses))
}

func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *Handler) Exists(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid item status id", err.Error())
		return
	}
	exists, err := h.service.Exists(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid item status id", err.Error())
		return
	}
	var dto ItemStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid item status id in request body", "")
		return
	}

	updated, err := h.service.Update(r.Context(), dtoToStatus(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, statusToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid item status id", err.Error())
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func statusToDTO(status ItemStatus) ItemStatusDTO {
	return ItemStatusDTO{
		ID:            status.ID,
		DesignationAr: status.DesignationAr,
		DesignationEn: status.DesignationEn,
		DesignationFr: status.DesignationFr,
		Category:      string(status.Category()),
	}
}

func statusesToDTOs(statuses []ItemStatus) []ItemStatusDTO {
	dtos := make([]ItemStatusDTO, 0, len(statuses))
	for _, status := range statuses {
		dtos = append(dtos, statusToDTO(status))
	}
	return dtos
}

func dtoToStatus(dto ItemStatusDTO) ItemStatus {
	return ItemStatus{
		ID:            dto.ID,
		DesignationAr: dto.DesignationAr,
		DesignationEn: dto.DesignationEn,
		DesignationFr: dto.DesignationFr,
	}
}
