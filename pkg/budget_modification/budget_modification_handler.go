package budget_modification

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/milplan/milplan/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type BudgetModificationDTO struct {
	ID              int64           `json:"id"`
	ApprovalDate    string          `json:"approvalDate"`
	DemandeDocument string          `json:"demandeDocument"`
	Amount          decimal.Decimal `json:"amount"`
	SignedAmount    decimal.Decimal `json:"signedAmount"`
	Direction       string          `json:"direction"`
	PlannedItemID   int64           `json:"plannedItemId"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new budget modification")

	var dto BudgetModificationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	modification, err := dtoToModification(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid approval date", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), modification)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, modificationToDTO(created))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid budget modification id", err.Error())
		return
	}
	modification, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, modificationToDTO(modification))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := rest.ParsePageRequest(r, "approvalDate")

	if raw := query.Get("plannedItemId"); raw != "" {
		plannedItemID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "invalid planned item id", err.Error())
			return
		}
		modifications, err := h.service.ListByPlannedItem(r.Context(), plannedItemID)
		if err != nil {
			rest.WriteServiceError(w, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, modificationsToDTOs(modifications))
		return
	}

	if query.Get("from") != "" || query.Get("to") != "" {
		from, err := time.Parse(dateLayout, query.Get("from"))
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "invalid range start", err.Error())
			return
		}
		to, err := time.Parse(dateLayout, query.Get("to"))
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "invalid range end", err.Error())
			return
		}
		modifications, err := h.service.ListByApprovalDateRange(r.Context(), from, to, page)
		if err != nil {
			rest.WriteServiceError(w, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, modificationsToDTOs(modifications))
		return
	}

	modifications, total, err := h.service.List(r.Context(), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.NewPage(modificationsToDTOs(modifications), total, page))
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
		rest.WriteError(w, http.StatusBadRequest, "invalid budget modification id", err.Error())
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
		rest.WriteError(w, http.StatusBadRequest, "invalid budget modification id", err.Error())
		return
	}
	var dto BudgetModificationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget modification id in request body", "")
		return
	}
	modification, err := dtoToModification(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid approval date", err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), modification)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, modificationToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid budget modification id", err.Error())
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

func modificationToDTO(modification BudgetModification) BudgetModificationDTO {
	return BudgetModificationDTO{
		ID:              modification.ID,
		ApprovalDate:    modification.ApprovalDate.Format(dateLayout),
		DemandeDocument: modification.DemandeDocument,
		Amount:          modification.Amount,
		SignedAmount:    modification.SignedAmount(),
		Direction:       string(modification.Direction),
		PlannedItemID:   modification.PlannedItemID,
	}
}

func modificationsToDTOs(modifications []BudgetModification) []BudgetModificationDTO {
	dtos := make([]BudgetModificationDTO, 0, len(modifications))
	for _, modification := range modifications {
		dtos = append(dtos, modificationToDTO(modification))
	}
	return dtos
}

func dtoToModification(dto BudgetModificationDTO) (BudgetModification, error) {
	var approvalDate time.Time
	if dto.ApprovalDate != "" {
		parsed, err := time.Parse(dateLayout, dto.ApprovalDate)
		if err != nil {
			return BudgetModification{}, err
		}
		approvalDate = parsed
	}
	return BudgetModification{
		ID:              dto.ID,
		ApprovalDate:    approvalDate,
		DemandeDocument: dto.DemandeDocument,
		Amount:          dto.Amount,
		Direction:       Direction(dto.Direction),
		PlannedItemID:   dto.PlannedItemID,
	}, nil
}
