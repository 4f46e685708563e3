package item_distribution

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/milplan/milplan/internal/rest"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type ItemDistributionDTO struct {
	ID            int64  `json:"id"`
	Quantity      int    `json:"quantity"`
	DistributedOn string `json:"distributedOn"`
	PlannedItemID int64  `json:"plannedItemId"`
	StructureID   int64  `json:"structureId"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new item distribution")

	dto, err := decodeDTO(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	distribution, err := dtoToDistribution(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid distribution date", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), distribution)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, distributionToDTO(created))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid item distribution id", err.Error())
		return
	}
	distribution, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, distributionToDTO(distribution))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "id")
	if raw := r.URL.Query().Get("structureId"); raw != "" {
		structureID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "invalid structure id", err.Error())
			return
		}
		distributions, err := h.service.ListByStructure(r.Context(), structureID, page)
		if err != nil {
			rest.WriteServiceError(w, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, distributionsToDTOs(distributions))
		return
	}

	distributions, total, err := h.service.List(r.Context(), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.NewPage(distributionsToDTOs(distributions), total, page))
}

// ListByPlannedItem serves the planned item's distribution listing, keyed
// by the planned item id in the route.
func (h *Handler) ListByPlannedItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid planned item id", err.Error())
		return
	}
	distributions, err := h.service.ListByPlannedItem(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, distributionsToDTOs(distributions))
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
		rest.WriteError(w, http.StatusBadRequest, "invalid item distribution id", err.Error())
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
		rest.WriteError(w, http.StatusBadRequest, "invalid item distribution id", err.Error())
		return
	}
	dto, err := decodeDTO(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid item distribution id in request body", "")
		return
	}
	distribution, err := dtoToDistribution(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid distribution date", err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), distribution)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, distributionToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid item distribution id", err.Error())
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeDTO(r *http.Request) (ItemDistributionDTO, error) {
	var dto ItemDistributionDTO
	err := json.NewDecoder(r.Body).Decode(&dto)
	return dto, err
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func distributionToDTO(distribution ItemDistribution) ItemDistributionDTO {
	return ItemDistributionDTO{
		ID:            distribution.ID,
		Quantity:      distribution.Quantity,
		DistributedOn: distribution.DistributedOn.Format(dateLayout),
		PlannedItemID: distribution.PlannedItemID,
		StructureID:   distribution.StructureID,
	}
}

func distributionsToDTOs(distributions []ItemDistribution) []ItemDistributionDTO {
	dtos := make([]ItemDistributionDTO, 0, len(distributions))
	for _, distribution := range distributions {
		dtos = append(dtos, distributionToDTO(distribution))
	}
	return dtos
}

func dtoToDistribution(dto ItemDistributionDTO) (ItemDistribution, error) {
	var distributedOn time.Time
	if dto.DistributedOn != "" {
		parsed, err := time.Parse(dateLayout, dto.DistributedOn)
		if err != nil {
			return ItemDistribution{}, err
		}
		distributedOn = parsed
	}
	return ItemDistribution{
		ID:            dto.ID,
		Quantity:      dto.Quantity,
		DistributedOn: distributedOn,
		PlannedItemID: dto.PlannedItemID,
		StructureID:   dto.StructureID,
	}, nil
}
