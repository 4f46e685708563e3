package structure

import (
	"encoding/json"
	"net/http"

	"github.com/milplan/milplan/internal/rest"
)

type StructureTypeDTO struct {
	ID            int64  `json:"id"`
	DesignationAr string `json:"designationAr"`
	DesignationEn string `json:"designationEn"`
	DesignationFr string `json:"designationFr"`
}

type TypeHandler struct {
	service TypeService
}

func NewTypeHandler(service TypeService) *TypeHandler {
	return &TypeHandler{service: service}
}

func (h *TypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto StructureTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), dtoToType(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, typeToDTO(created))
}

func (h *TypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid structure type id", err.Error())
		return
	}
	structureType, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, typeToDTO(structureType))
}

func (h *TypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	dtos := make([]StructureTypeDTO, 0, len(types))
	for _, structureType := range types {
		dtos = append(dtos, typeToDTO(structureType))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *TypeHandler) Search(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	dtos := make([]StructureTypeDTO, 0, len(types))
	for _, structureType := range types {
		dtos = append(dtos, typeToDTO(structureType))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *TypeHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *TypeHandler) Exists(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid structure type id", err.Error())
		return
	}
	exists, err := h.service.Exists(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *TypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid structure type id", err.Error())
		return
	}
	var dto StructureTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid structure type id in request body", "")
		return
	}
	updated, err := h.service.Update(r.Context(), dtoToType(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, typeToDTO(updated))
}

func (h *TypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid structure type id", err.Error())
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func typeToDTO(structureType StructureType) StructureTypeDTO {
	return StructureTypeDTO{
		ID:            structureType.ID,
		DesignationAr: structureType.DesignationAr,
		DesignationEn: structureType.DesignationEn,
		DesignationFr: structureType.DesignationFr,
	}
}

func dtoToType(dto StructureTypeDTO) StructureType {
	return StructureType{
		ID:            dto.ID,
		DesignationAr: dto.DesignationAr,
		DesignationEn: dto.DesignationEn,
		DesignationFr: dto.DesignationFr,
	}
}
