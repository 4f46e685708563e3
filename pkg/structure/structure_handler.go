package structure

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/milplan/milplan/internal/rest"
	log "github.com/sirupsen/logrus"
)

type StructureDTO struct {
	ID            int64  `json:"id"`
	Uid           string `json:"uid,omitempty"`
	DesignationAr string `json:"designationAr"`
	DesignationEn string `json:"designationEn"`
	DesignationFr string `json:"designationFr"`
	Abbreviation  string `json:"abbreviation,omitempty"`
	TypeID        int64  `json:"typeId"`
	ParentID      *int64 `json:"parentId,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new structure")

	var dto StructureDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), dtoToStructure(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, structureToDTO(created))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid structure id", err.Error())
		return
	}
	structure, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, structureToDTO(structure))
}

func (h *Handler) GetByUid(w http.ResponseWriter, r *http.Request) {
	structure, err := h.service.GetByUid(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, structureToDTO(structure))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "id")
	structures, total, err := h.service.List(r.Context(), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.NewPage(structuresToDTOs(structures), total, page))
}

func (h *Handler) ListRoots(w http.ResponseWriter, r *http.Request) {
	structures, err := h.service.ListRoots(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, structuresToDTOs(structures))
}

func (h *Handler) ListChildren(w http.ResponseWriter, r *http.Request) {
	h.subtree(w, r, h.service.ListChildren)
}

func (h *Handler) ListAncestors(w http.ResponseWriter, r *http.Request) {
	h.subtree(w, r, h.service.ListAncestors)
}

func (h *Handler) ListDescendants(w http.ResponseWriter, r *http.Request) {
	h.subtree(w, r, h.service.ListDescendants)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "designationFr")
	structures, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, structuresToDTOs(structures))
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
		rest.WriteError(w, http.StatusBadRequest, "invalid structure id", err.Error())
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
		rest.WriteError(w, http.StatusBadRequest, "invalid structure id", err.Error())
		return
	}
	var dto StructureDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid structure id in request body", "")
		return
	}

	updated, err := h.service.Update(r.Context(), dtoToStructure(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, structureToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid structure id", err.Error())
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) subtree(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, id int64) ([]Structure, error)) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid structure id", err.Error())
		return
	}
	structures, err := list(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, structuresToDTOs(structures))
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func structureToDTO(structure Structure) StructureDTO {
	return StructureDTO{
		ID:            structure.ID,
		Uid:           structure.Uid,
		DesignationAr: structure.DesignationAr,
		DesignationEn: structure.DesignationEn,
		DesignationFr: structure.DesignationFr,
		Abbreviation:  structure.Abbreviation,
		TypeID:        structure.TypeID,
		ParentID:      structure.ParentID,
	}
}

func structuresToDTOs(structures []Structure) []StructureDTO {
	dtos := make([]StructureDTO, 0, len(structures))
	for _, structure := range structures {
		dtos = append(dtos, structureToDTO(structure))
	}
	return dtos
}

func dtoToStructure(dto StructureDTO) Structure {
	return Structure{
		ID:            dto.ID,
		Uid:           dto.Uid,
		DesignationAr: dto.DesignationAr,
		DesignationEn: dto.DesignationEn,
		DesignationFr: dto.DesignationFr,
		Abbreviation:  dto.Abbreviation,
		TypeID:        dto.TypeID,
		ParentID:      dto.ParentID,
	}
}
