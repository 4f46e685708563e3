package rubric

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/milplan/milplan/internal/rest"
	log "github.com/sirupsen/logrus"
)

type RubricDTO struct {
	ID            int64  `json:"id"`
	Code          string `json:"code"`
	DesignationAr string `json:"designationAr"`
	DesignationEn string `json:"designationEn"`
	DesignationFr string `json:"designationFr"`
	DomainID      int64  `json:"domainId"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new rubric")

	var dto RubricDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), dtoToRubric(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, rubricToDTO(created))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid rubric id", err.Error())
		return
	}
	rubric, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rubricToDTO(rubric))
}

// List returns a page of rubrics, optionally narrowed to a single domain
// with the domainId query parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "id")

	if v := r.URL.Query().Get("domainId"); v != "" {
		domainID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "invalid domainId", err.Error())
			return
		}
		rubrics, err := h.service.ListByDomain(r.Context(), domainID, page)
		if err != nil {
			rest.WriteServiceError(w, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, rubricsToDTOs(rubrics))
		return
	}

	rubrics, total, err := h.service.List(r.Context(), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.NewPage(rubricsToDTOs(rubrics), total, page))
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "designationFr")
	rubrics, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rubricsToDTOs(rubrics))
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
		rest.WriteError(w, http.StatusBadRequest, "invalid rubric id", err.Error())
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
		rest.WriteError(w, http.StatusBadRequest, "invalid rubric id", err.Error())
		return
	}
	var dto RubricDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid rubric id in request body", "")
		return
	}

	updated, err := h.service.Update(r.Context(), dtoToRubric(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rubricToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid rubric id", err.Error())
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

func rubricToDTO(rubric Rubric) RubricDTO {
	return RubricDTO{
		ID:            rubric.ID,
		Code:          rubric.Code,
		DesignationAr: rubric.DesignationAr,
		DesignationEn: rubric.DesignationEn,
		DesignationFr: rubric.DesignationFr,
		DomainID:      rubric.DomainID,
	}
}

func rubricsToDTOs(rubrics []Rubric) []RubricDTO {
	dtos := make([]RubricDTO, 0, len(rubrics))
	for _, rubric := range rubrics {
		dtos = append(dtos, rubricToDTO(rubric))
	}
	return dtos
}

func dtoToRubric(dto RubricDTO) Rubric {
	return Rubric{
		ID:            dto.ID,
		Code:          dto.Code,
		DesignationAr: dto.DesignationAr,
		DesignationEn: dto.DesignationEn,
		DesignationFr: dto.DesignationFr,
		DomainID:      dto.DomainID,
	}
}
