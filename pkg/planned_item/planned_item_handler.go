package planned_item

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/milplan/milplan/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type PlannedItemDTO struct {
	ID            int64           `json:"id"`
	DesignationAr string          `json:"designationAr"`
	DesignationEn string          `json:"designationEn"`
	DesignationFr string          `json:"designationFr"`
	OperationCode string          `json:"operationCode"`
	FiscalYear    int             `json:"fiscalYear"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Amount        decimal.Decimal `json:"amount"`
	Priority      string          `json:"priority"`
	RubricID      int64           `json:"rubricId"`
	ItemStatusID  int64           `json:"itemStatusId"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new planned item")

	var dto PlannedItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), dtoToItem(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, itemToDTO(created))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid planned item id", err.Error())
		return
	}
	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, itemToDTO(item))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}
	page := rest.ParsePageRequest(r, "id")
	items, total, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.NewPage(itemsToDTOs(items), total, page))
}

func (h *Handler) ListByPriority(w http.ResponseWriter, r *http.Request) {
	priority, ok := ParsePriority(mux.Vars(r)["priority"])
	if !ok {
		rest.WriteError(w, http.StatusBadRequest, "unknown priority: "+mux.Vars(r)["priority"], "")
		return
	}
	items, err := h.service.ListByPriority(r.Context(), priority)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, itemsToDTOs(items))
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "designationFr")
	items, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, itemsToDTOs(items))
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
		rest.WriteError(w, http.StatusBadRequest, "invalid planned item id", err.Error())
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
		rest.WriteError(w, http.StatusBadRequest, "invalid planned item id", err.Error())
		return
	}
	var dto PlannedItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid planned item id in request body", "")
		return
	}

	updated, err := h.service.Update(r.Context(), dtoToItem(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, itemToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid planned item id", err.Error())
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseFilter(r *http.Request) (Filter, error) {
	var filter Filter
	query := r.URL.Query()
	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return Filter{}, err
		}
		filter.FiscalYear = year
	}
	if raw := query.Get("rubricId"); raw != "" {
		rubricID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Filter{}, err
		}
		filter.RubricID = rubricID
	}
	if raw := query.Get("statusId"); raw != "" {
		statusID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Filter{}, err
		}
		filter.ItemStatusID = statusID
	}
	return filter, nil
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func itemToDTO(item PlannedItem) PlannedItemDTO {
	return PlannedItemDTO{
		ID:            item.ID,
		DesignationAr: item.DesignationAr,
		DesignationEn: item.DesignationEn,
		DesignationFr: item.DesignationFr,
		OperationCode: item.OperationCode,
		FiscalYear:    item.FiscalYear,
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
		Amount:        item.Amount(),
		Priority:      string(item.ItemPriority()),
		RubricID:      item.RubricID,
		ItemStatusID:  item.ItemStatusID,
	}
}

func itemsToDTOs(items []PlannedItem) []PlannedItemDTO {
	dtos := make([]PlannedItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, itemToDTO(item))
	}
	return dtos
}

func dtoToItem(dto PlannedItemDTO) PlannedItem {
	return PlannedItem{
		ID:            dto.ID,
		DesignationAr: dto.DesignationAr,
		DesignationEn: dto.DesignationEn,
		DesignationFr: dto.DesignationFr,
		OperationCode: dto.OperationCode,
		FiscalYear:    dto.FiscalYear,
		Quantity:      dto.Quantity,
		UnitPrice:     dto.UnitPrice,
		RubricID:      dto.RubricID,
		ItemStatusID:  dto.ItemStatusID,
	}
}
