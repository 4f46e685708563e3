package military

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/milplan/milplan/internal/rest"
)

type CategoryDTO struct {
	ID            int64  `json:"id"`
	DesignationAr string `json:"designationAr"`
	DesignationEn string `json:"designationEn"`
	DesignationFr string `json:"designationFr"`
}

type RankDTO struct {
	ID            int64  `json:"id"`
	DesignationAr string `json:"designationAr"`
	DesignationEn string `json:"designationEn"`
	DesignationFr string `json:"designationFr"`
	CategoryID    int64  `json:"categoryId"`
}

type CategoryHandler struct {
	service CategoryService
}

func NewCategoryHandler(service CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), categoryFromDTO(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, categoryToDTO(created))
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid military category id", err.Error())
		return
	}
	category, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, categoryToDTO(category))
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, categoryToDTO(category))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *CategoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, categoryToDTO(category))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *CategoryHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *CategoryHandler) Exists(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid military category id", err.Error())
		return
	}
	exists, err := h.service.Exists(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid military category id", err.Error())
		return
	}
	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid military category id in request body", "")
		return
	}
	updated, err := h.service.Update(r.Context(), categoryFromDTO(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, categoryToDTO(updated))
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid military category id", err.Error())
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type RankHandler struct {
	service RankService
}

func NewRankHandler(service RankService) *RankHandler {
	return &RankHandler{service: service}
}

func (h *RankHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto RankDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), rankFromDTO(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, rankToDTO(created))
}

func (h *RankHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid military rank id", err.Error())
		return
	}
	rank, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rankToDTO(rank))
}

func (h *RankHandler) List(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "invalid category id", err.Error())
			return
		}
		ranks, err := h.service.ListByCategory(r.Context(), categoryID)
		if err != nil {
			rest.WriteServiceError(w, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, ranksToDTOs(ranks))
		return
	}

	page := rest.ParsePageRequest(r, "id")
	ranks, total, err := h.service.List(r.Context(), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.NewPage(ranksToDTOs(ranks), total, page))
}

func (h *RankHandler) Search(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "designationFr")
	ranks, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ranksToDTOs(ranks))
}

func (h *RankHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *RankHandler) Exists(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid military rank id", err.Error())
		return
	}
	exists, err := h.service.Exists(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *RankHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid military rank id", err.Error())
		return
	}
	var dto RankDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid military rank id in request body", "")
		return
	}
	updated, err := h.service.Update(r.Context(), rankFromDTO(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rankToDTO(updated))
}

func (h *RankHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid military rank id", err.Error())
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

func categoryToDTO(category Category) CategoryDTO {
	return CategoryDTO{
		ID:            category.ID,
		DesignationAr: category.DesignationAr,
		DesignationEn: category.DesignationEn,
		DesignationFr: category.DesignationFr,
	}
}

func categoryFromDTO(dto CategoryDTO) Category {
	return Category{
		ID:            dto.ID,
		DesignationAr: dto.DesignationAr,
		DesignationEn: dto.DesignationEn,
		DesignationFr: dto.DesignationFr,
	}
}

func rankToDTO(rank Rank) RankDTO {
	return RankDTO{
		ID:            rank.ID,
		DesignationAr: rank.DesignationAr,
		DesignationEn: rank.DesignationEn,
		DesignationFr: rank.DesignationFr,
		CategoryID:    rank.CategoryID,
	}
}

func ranksToDTOs(ranks []Rank) []RankDTO {
	dtos := make([]RankDTO, 0, len(ranks))
	for _, rank := range ranks {
		dtos = append(dtos, rankToDTO(rank))
	}
	return dtos
}

func rankFromDTO(dto RankDTO) Rank {
	return Rank{
		ID:            dto.ID,
		DesignationAr: dto.DesignationAr,
		DesignationEn: dto.DesignationEn,
		DesignationFr: dto.DesignationFr,
		CategoryID:    dto.CategoryID,
	}
}
