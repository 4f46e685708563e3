package person

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type PersonDTO struct {
	ID              int64   `json:"id"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	FirstNameAr     string  `json:"firstNameAr"`
	LastNameAr      string  `json:"lastNameAr"`
	Gender          string  `json:"gender"`
	BirthDate       *string `json:"birthDate"`
	BirthLocalityID *int64  `json:"birthLocalityId"`
	NationalityID   *int64  `json:"nationalityId"`
	// FullName is derived from the last and first names; ignored on input.
	FullName string `json:"fullName,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new person")

	var dto PersonDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	person, err := dtoToPerson(dto)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), person)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, personToDTO(created))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid person id", err.Error())
		return
	}
	person, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, personToDTO(person))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "id")
	persons, total, err := h.service.List(r.Context(), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.NewPage(personsToDTOs(persons), total, page))
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "lastName")
	persons, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, personsToDTOs(persons))
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
		rest.WriteError(w, http.StatusBadRequest, "invalid person id", err.Error())
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
		rest.WriteError(w, http.StatusBadRequest, "invalid person id", err.Error())
		return
	}
	var dto PersonDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid person id in request body", "")
		return
	}

	person, err := dtoToPerson(dto)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), person)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, personToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid person id", err.Error())
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

func personToDTO(person Person) PersonDTO {
	dto := PersonDTO{
		ID:              person.ID,
		FirstName:       person.FirstName,
		LastName:        person.LastName,
		FirstNameAr:     person.FirstNameAr,
		LastNameAr:      person.LastNameAr,
		Gender:          string(person.Gender),
		BirthLocalityID: person.BirthLocalityID,
		NationalityID:   person.NationalityID,
		FullName:        person.FullName(),
	}
	if person.BirthDate != nil {
		formatted := person.BirthDate.Format(dateLayout)
		dto.BirthDate = &formatted
	}
	return dto
}

func personsToDTOs(persons []Person) []PersonDTO {
	dtos := make([]PersonDTO, 0, len(persons))
	for _, person := range persons {
		dtos = append(dtos, personToDTO(person))
	}
	return dtos
}

func dtoToPerson(dto PersonDTO) (Person, error) {
	person := Person{
		ID:              dto.ID,
		FirstName:       dto.FirstName,
		LastName:        dto.LastName,
		FirstNameAr:     dto.FirstNameAr,
		LastNameAr:      dto.LastNameAr,
		Gender:          Gender(dto.Gender),
		BirthLocalityID: dto.BirthLocalityID,
		NationalityID:   dto.NationalityID,
	}
	if dto.BirthDate != nil && *dto.BirthDate != "" {
		parsed, err := time.Parse(dateLayout, *dto.BirthDate)
		if err != nil {
			return Person{}, apperr.Invalidf("birth date must use the %s format", dateLayout)
		}
		person.BirthDate = &parsed
	}
	return person, nil
}
