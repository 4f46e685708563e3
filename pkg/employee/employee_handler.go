package employee

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

type EmployeeDTO struct {
	ID                 int64   `json:"id"`
	RegistrationNumber string  `json:"registrationNumber"`
	HiredOn            *string `json:"hiredOn"`
	PersonID           int64   `json:"personId"`
	JobID              int64   `json:"jobId"`
	StructureID        int64   `json:"structureId"`
	RankID             *int64  `json:"rankId"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new employee")

	var dto EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	employee, err := dtoToEmployee(dto)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), employee)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, employeeToDTO(created))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}
	employee, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, employeeToDTO(employee))
}

func (h *Handler) GetByRegistrationNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	employee, err := h.service.GetByRegistrationNumber(r.Context(), number)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, employeeToDTO(employee))
}

// List serves the paginated listing and the structureId/jobId filters. The
// filtered variants return plain arrays, matched to the UI views that consume
// them whole.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("structureId"); v != "" {
		structureID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "invalid structureId", err.Error())
			return
		}
		employees, err := h.service.ListByStructure(r.Context(), structureID)
		if err != nil {
			rest.WriteServiceError(w, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, employeesToDTOs(employees))
		return
	}
	if v := r.URL.Query().Get("jobId"); v != "" {
		jobID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "invalid jobId", err.Error())
			return
		}
		employees, err := h.service.ListByJob(r.Context(), jobID)
		if err != nil {
			rest.WriteServiceError(w, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, employeesToDTOs(employees))
		return
	}

	page := rest.ParsePageRequest(r, "registrationNumber")
	employees, total, err := h.service.List(r.Context(), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.NewPage(employeesToDTOs(employees), total, page))
}

func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("structureId"); v != "" {
		structureID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "invalid structureId", err.Error())
			return
		}
		count, err := h.service.CountByStructure(r.Context(), structureID)
		if err != nil {
			rest.WriteServiceError(w, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
		return
	}

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
		rest.WriteError(w, http.StatusBadRequest, "invalid employee id", err.Error())
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
		rest.WriteError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}
	var dto EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid employee id in request body", "")
		return
	}

	employee, err := dtoToEmployee(dto)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), employee)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, employeeToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid employee id", err.Error())
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

func employeeToDTO(employee Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:                 employee.ID,
		RegistrationNumber: employee.RegistrationNumber,
		PersonID:           employee.PersonID,
		JobID:              employee.JobID,
		StructureID:        employee.StructureID,
		RankID:             employee.RankID,
	}
	if employee.HiredOn != nil {
		formatted := employee.HiredOn.Format(dateLayout)
		dto.HiredOn = &formatted
	}
	return dto
}

func employeesToDTOs(employees []Employee) []EmployeeDTO {
	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, employee := range employees {
		dtos = append(dtos, employeeToDTO(employee))
	}
	return dtos
}

func dtoToEmployee(dto EmployeeDTO) (Employee, error) {
	employee := Employee{
		ID:                 dto.ID,
		RegistrationNumber: dto.RegistrationNumber,
		PersonID:           dto.PersonID,
		JobID:              dto.JobID,
		StructureID:        dto.StructureID,
		RankID:             dto.RankID,
	}
	if dto.HiredOn != nil && *dto.HiredOn != "" {
		parsed, err := time.Parse(dateLayout, *dto.HiredOn)
		if err != nil {
			return Employee{}, apperr.Invalidf("hire date must use the %s format", dateLayout)
		}
		employee.HiredOn = &parsed
	}
	return employee, nil
}
