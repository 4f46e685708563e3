package geo

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/milplan/milplan/internal/rest"
)

type CountryDTO struct {
	ID            int64  `json:"id"`
	Code          string `json:"code"`
	DesignationAr string `json:"designationAr"`
	DesignationEn string `json:"designationEn"`
	DesignationFr string `json:"designationFr"`
}

type StateDTO struct {
	ID            int64  `json:"id"`
	Code          string `json:"code,omitempty"`
	DesignationAr string `json:"designationAr"`
	DesignationEn string `json:"designationEn"`
	DesignationFr string `json:"designationFr"`
	CountryID     int64  `json:"countryId"`
}

type LocalityDTO struct {
	ID            int64  `json:"id"`
	PostalCode    string `json:"postalCode,omitempty"`
	DesignationAr string `json:"designationAr"`
	DesignationEn string `json:"designationEn"`
	DesignationFr string `json:"designationFr"`
	StateID       int64  `json:"stateId"`
}

type CountryHandler struct {
	service CountryService
}

func NewCountryHandler(service CountryService) *CountryHandler {
	return &CountryHandler{service: service}
}

func (h *CountryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CountryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), countryFromDTO(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, countryToDTO(created))
}

func (h *CountryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid country id", err.Error())
		return
	}
	country, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, countryToDTO(country))
}

func (h *CountryHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	country, err := h.service.GetByCode(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, countryToDTO(country))
}

func (h *CountryHandler) List(w http.ResponseWriter, r *http.Request) {
	countries, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	dtos := make([]CountryDTO, 0, len(countries))
	for _, country := range countries {
		dtos = append(dtos, countryToDTO(country))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *CountryHandler) Search(w http.ResponseWriter, r *http.Request) {
	countries, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	dtos := make([]CountryDTO, 0, len(countries))
	for _, country := range countries {
		dtos = append(dtos, countryToDTO(country))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *CountryHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *CountryHandler) Exists(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid country id", err.Error())
		return
	}
	exists, err := h.service.Exists(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *CountryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid country id", err.Error())
		return
	}
	var dto CountryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid country id in request body", "")
		return
	}
	updated, err := h.service.Update(r.Context(), countryFromDTO(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, countryToDTO(updated))
}

func (h *CountryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid country id", err.Error())
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type StateHandler struct {
	service StateService
}

func NewStateHandler(service StateService) *StateHandler {
	return &StateHandler{service: service}
}

func (h *StateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto StateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), stateFromDTO(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, stateToDTO(created))
}

func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid state id", err.Error())
		return
	}
	state, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, stateToDTO(state))
}

func (h *StateHandler) List(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("countryId"); raw != "" {
		countryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "invalid country id", err.Error())
			return
		}
		states, err := h.service.ListByCountry(r.Context(), countryID)
		if err != nil {
			rest.WriteServiceError(w, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, statesToDTOs(states))
		return
	}

	states, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, statesToDTOs(states))
}

func (h *StateHandler) Search(w http.ResponseWriter, r *http.Request) {
	states, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, statesToDTOs(states))
}

func (h *StateHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *StateHandler) Exists(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid state id", err.Error())
		return
	}
	exists, err := h.service.Exists(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *StateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid state id", err.Error())
		return
	}
	var dto StateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid state id in request body", "")
		return
	}
	updated, err := h.service.Update(r.Context(), stateFromDTO(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, stateToDTO(updated))
}

func (h *StateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid state id", err.Error())
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type LocalityHandler struct {
	service LocalityService
}

func NewLocalityHandler(service LocalityService) *LocalityHandler {
	return &LocalityHandler{service: service}
}

func (h *LocalityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto LocalityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), localityFromDTO(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, localityToDTO(created))
}

func (h *LocalityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid locality id", err.Error())
		return
	}
	locality, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, localityToDTO(locality))
}

func (h *LocalityHandler) List(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("stateId"); raw != "" {
		stateID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "invalid state id", err.Error())
			return
		}
		localities, err := h.service.ListByState(r.Context(), stateID)
		if err != nil {
			rest.WriteServiceError(w, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, localitiesToDTOs(localities))
		return
	}

	localities, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, localitiesToDTOs(localities))
}

func (h *LocalityHandler) Search(w http.ResponseWriter, r *http.Request) {
	localities, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, localitiesToDTOs(localities))
}

func (h *LocalityHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *LocalityHandler) Exists(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid locality id", err.Error())
		return
	}
	exists, err := h.service.Exists(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *LocalityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid locality id", err.Error())
		return
	}
	var dto LocalityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid locality id in request body", "")
		return
	}
	updated, err := h.service.Update(r.Context(), localityFromDTO(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, localityToDTO(updated))
}

func (h *LocalityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid locality id", err.Error())
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

func countryToDTO(country Country) CountryDTO {
	return CountryDTO{
		ID:            country.ID,
		Code:          country.Code,
		DesignationAr: country.DesignationAr,
		DesignationEn: country.DesignationEn,
		DesignationFr: country.DesignationFr,
	}
}

func countryFromDTO(dto CountryDTO) Country {
	return Country{
		ID:            dto.ID,
		Code:          dto.Code,
		DesignationAr: dto.DesignationAr,
		DesignationEn: dto.DesignationEn,
		DesignationFr: dto.DesignationFr,
	}
}

func stateToDTO(state State) StateDTO {
	return StateDTO{
		ID:            state.ID,
		Code:          state.Code,
		DesignationAr: state.DesignationAr,
		DesignationEn: state.DesignationEn,
		DesignationFr: state.DesignationFr,
		CountryID:     state.CountryID,
	}
}

func statesToDTOs(states []State) []StateDTO {
	dtos := make([]StateDTO, 0, len(states))
	for _, state := range states {
		dtos = append(dtos, stateToDTO(state))
	}
	return dtos
}

func stateFromDTO(dto StateDTO) State {
	return State{
		ID:            dto.ID,
		Code:          dto.Code,
		DesignationAr: dto.DesignationAr,
		DesignationEn: dto.DesignationEn,
		DesignationFr: dto.DesignationFr,
		CountryID:     dto.CountryID,
	}
}

func localityToDTO(locality Locality) LocalityDTO {
	return LocalityDTO{
		ID:            locality.ID,
		PostalCode:    locality.PostalCode,
		DesignationAr: locality.DesignationAr,
		DesignationEn: locality.DesignationEn,
		DesignationFr: locality.DesignationFr,
		StateID:       locality.StateID,
	}
}

func localitiesToDTOs(localities []Locality) []LocalityDTO {
	dtos := make([]LocalityDTO, 0, len(localities))
	for _, locality := range localities {
		dtos = append(dtos, localityToDTO(locality))
	}
	return dtos
}

func localityFromDTO(dto LocalityDTO) Locality {
	return Locality{
		ID:            dto.ID,
		PostalCode:    dto.PostalCode,
		DesignationAr: dto.DesignationAr,
		DesignationEn: dto.DesignationEn,
		DesignationFr: dto.DesignationFr,
		StateID:       dto.StateID,
	}
}
