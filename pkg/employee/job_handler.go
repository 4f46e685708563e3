package employee

import (
	"encoding/json"
	"net/http"

	"github.com/milplan/milplan/internal/rest"
	log "github.com/sirupsen/logrus"
)

type JobDTO struct {
	ID            int64  `json:"id"`
	DesignationAr string `json:"designationAr"`
	DesignationEn string `json:"designationEn"`
	DesignationFr string `json:"designationFr"`
}

type JobHandler struct {
	service JobService
}

func NewJobHandler(service JobService) *JobHandler {
	return &JobHandler{service: service}
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new job")

	var dto JobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), dtoToJob(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, jobToDTO(created))
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid job id", err.Error())
		return
	}
	job, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, jobToDTO(job))
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "designationFr")
	jobs, total, err := h.service.List(r.Context(), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.NewPage(jobsToDTOs(jobs), total, page))
}

func (h *JobHandler) Search(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePageRequest(r, "designationFr")
	jobs, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, jobsToDTOs(jobs))
}

func (h *JobHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *JobHandler) Exists(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid job id", err.Error())
		return
	}
	exists, err := h.service.Exists(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid job id", err.Error())
		return
	}
	var dto JobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if dto.ID == 0 || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid job id in request body", "")
		return
	}

	updated, err := h.service.Update(r.Context(), dtoToJob(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, jobToDTO(updated))
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid job id", err.Error())
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func jobToDTO(job Job) JobDTO {
	return JobDTO{
		ID:            job.ID,
		DesignationAr: job.DesignationAr,
		DesignationEn: job.DesignationEn,
		DesignationFr: job.DesignationFr,
	}
}

func jobsToDTOs(jobs []Job) []JobDTO {
	dtos := make([]JobDTO, 0, len(jobs))
	for _, job := range jobs {
		dtos = append(dtos, jobToDTO(job))
	}
	return dtos
}

func dtoToJob(dto JobDTO) Job {
	return Job{
		ID:            dto.ID,
		DesignationAr: dto.DesignationAr,
		DesignationEn: dto.DesignationEn,
		DesignationFr: dto.DesignationFr,
	}
}
