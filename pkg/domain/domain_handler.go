package domain

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/milplan/milplan/internal/rest"
	log "github.com/sirupsen/logrus"
)

type DomainDTO struct {
	ID            int64  `json:"id"`
	DesignationAr string `json:"designationAr"`
	DesignationEn string `json:"designationEn"`
	DesignationFr string `json:"designationFr"`
	// Category is derived from the designations; ignored on input.
	Category string `json:"category,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new domain")

	var dto DomainDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), dtoToDomain(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, domainToDTO(created))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid domain id", err.Error())
		return
	}
	domain, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, domainToDTO(domain))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "id")
	domains, total, err := h.service.List(r.Context(), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.NewPage(domainsToDTOs(domains), total, page))
}

func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := ParseCategory(mux.Vars(r)["category"])
	if !ok {
		rest.WriteError(w, http.StatusBadRequest, "unknown category: "+mux.Vars(r)["category"], "")
		return
	}
	domains, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, domainsToDTOs(domains))
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "designationFr")
	domains, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, domainsToDTOs(domains))
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
		rest.WriteError(w, http.StatusBadRequest, "invalid domain id", err.Error())
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
		rest.WriteError(w, http.StatusBadRequest, "invalid domain id", err.Error())
		return
	}
	var dto DomainDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid domain id in request body", "")
		return
	}

	updated, err := h.service.Update(r.Context(), dtoToDomain(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, domainToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid domain id", err.Error())
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

func domainToDTO(domain Domain) DomainDTO {
	return DomainDTO{
		ID:            domain.ID,
		DesignationAr: domain.DesignationAr,
		DesignationEn: domain.DesignationEn,
		DesignationFr: domain.DesignationFr,
		Category:      string(domain.Category()),
	}
}

func domainsToDTOs(domains []Domain) []DomainDTO {
	dtos := make([]DomainDTO, 0, len(domains))
	for _, domain := range domains {
		dtos = append(dtos, domainToDTO(domain))
	}
	return dtos
}

func dtoToDomain(dto DomainDTO) Domain {
	return Domain{
		ID:            dto.ID,
		DesignationAr: dto.DesignationAr,
		DesignationEn: dto.DesignationEn,
		DesignationFr: dto.DesignationFr,
	}
}
