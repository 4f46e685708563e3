package domain

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*Handler, *mux.Router) {
	repo := NewStubRepo()
	t.Cleanup(repo.Cleanup)
	handler := NewHandler(NewService(repo, nil))

	r := mux.NewRouter()
	r.HandleFunc("/api/domain", handler.Create).Methods("POST")
	r.HandleFunc("/api/domain/category/{category}", handler.ListByCategory).Methods("GET")
	r.HandleFunc("/api/domain/{id}", handler.Get).Methods("GET")
	r.HandleFunc("/api/domain/{id}", handler.Update).Methods("PUT")
	r.HandleFunc("/api/domain/{id}", handler.Delete).Methods("DELETE")
	return handler, r
}

func postDomain(t *testing.T, r *mux.Router, dto DomainDTO) DomainDTO {
	t.Helper()
	body, err := json.Marshal(dto)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/domain", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created DomainDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	return created
}

func TestHandler_Create(t *testing.T) {
	_, r := setupHandlerTest(t)

	created := postDomain(t, r, DomainDTO{
		DesignationAr: "مجال",
		DesignationEn: "Technical Equipment",
		DesignationFr: "Équipement technique",
	})

	assert.NotZero(t, created.ID)
	assert.Equal(t, "TECHNICAL", created.Category)
}

func TestHandler_Create_MissingDesignation(t *testing.T) {
	_, r := setupHandlerTest(t)

	body, _ := json.Marshal(DomainDTO{DesignationEn: "Only English"})
	req := httptest.NewRequest(http.MethodPost, "/api/domain", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Create_Duplicate(t *testing.T) {
	_, r := setupHandlerTest(t)

	dto := DomainDTO{DesignationAr: "مجال", DesignationEn: "Eq", DesignationFr: "Équipement"}
	postDomain(t, r, dto)

	body, _ := json.Marshal(dto)
	req := httptest.NewRequest(http.MethodPost, "/api/domain", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_Get_NotFound(t *testing.T) {
	_, r := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/domain/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	assert.Contains(t, errResponse.Error, "Domain not found with ID: 42")
}

func TestHandler_Update_IdMismatch(t *testing.T) {
	_, r := setupHandlerTest(t)

	created := postDomain(t, r, DomainDTO{DesignationAr: "م", DesignationEn: "E", DesignationFr: "F"})

	created.ID = created.ID + 1
	body, _ := json.Marshal(created)
	req := httptest.NewRequest(http.MethodPut, "/api/domain/1", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Delete(t *testing.T) {
	_, r := setupHandlerTest(t)

	created := postDomain(t, r, DomainDTO{DesignationAr: "م", DesignationEn: "E", DesignationFr: "F"})

	req := httptest.NewRequest(http.MethodDelete, "/api/domain/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/domain/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	_ = created
}

func TestHandler_ListByCategory(t *testing.T) {
	_, r := setupHandlerTest(t)

	postDomain(t, r, DomainDTO{DesignationAr: "أ", DesignationEn: "Site Security", DesignationFr: "Sécurité"})
	postDomain(t, r, DomainDTO{DesignationAr: "ب", DesignationEn: "Catering", DesignationFr: "Restauration"})

	req := httptest.NewRequest(http.MethodGet, "/api/domain/category/security", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result []DomainDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	require.Len(t, result, 1)
	assert.Equal(t, "Site Security", result[0].DesignationEn)
}
