package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func TestHandler_CreatePatient(t *testing.T) {
	h, e := newTestHandler()

	body := `{"id":"P001","name":"Ananya","city":"Pune","age":28,"gender":"female","height":1.62,"weight":48}`
	req := httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var out struct {
		Message string   `json:"message"`
		Patient *Patient `json:"patient"`
	}
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Message == "" {
		t.Error("expected a message")
	}
	if out.Patient == nil || out.Patient.BMI != 18.29 {
		t.Errorf("expected derived bmi 18.29 in response, got %+v", out.Patient)
	}
}

func TestHandler_CreatePatient_RejectsClientDerivedFields(t *testing.T) {
	h, e := newTestHandler()

	// bmi/verdict in the payload must be recomputed server-side.
	body := `{"id":"P001","name":"Ananya","city":"Pune","age":28,"gender":"female","height":1.62,"weight":48,"bmi":5,"verdict":"Obese"}`
	req := httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out struct {
		Patient *Patient `json:"patient"`
	}
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Patient.BMI != 18.29 || out.Patient.Verdict != "Underweight" {
		t.Errorf("derived fields not recomputed: %+v", out.Patient)
	}
}

func TestHandler_CreatePatient_ValidationError(t *testing.T) {
	h, e := newTestHandler()

	body := `{"id":"P001","name":"","city":"Pune","age":28,"gender":"female","height":1.62,"weight":48}`
	req := httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePatient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", he.Code)
	}
	if msg, _ := he.Message.(string); !strings.Contains(msg, "name") {
		t.Errorf("expected field name in message, got %v", he.Message)
	}
}

func TestHandler_CreatePatient_Duplicate(t *testing.T) {
	h, e := newTestHandler()
	h.svc.Create(context.Background(), validPatient("P001"))

	body := `{"id":"P001","name":"Other","city":"Delhi","age":40,"gender":"male","height":1.7,"weight":80}`
	req := httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePatient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate, got %d", he.Code)
	}
}

func TestHandler_GetPatient(t *testing.T) {
	h, e := newTestHandler()
	h.svc.Create(context.Background(), validPatient("P001"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("P001")

	if err := h.GetPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var p Patient
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.ID != "P001" || p.Verdict == "" {
		t.Errorf("unexpected body: %+v", p)
	}
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.GetPatient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", he.Code)
	}
}

func TestHandler_UpdatePatient(t *testing.T) {
	h, e := newTestHandler()
	h.svc.Create(context.Background(), validPatient("P001"))

	body := `{"weight":90}`
	req := httptest.NewRequest(http.MethodPut, "/edit/P001", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("P001")

	if err := h.UpdatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var out struct {
		Patient *Patient `json:"patient"`
	}
	json.Unmarshal(rec.Body.Bytes(), &out)
	// 90 / 1.75^2 = 29.39
	if out.Patient.BMI != 29.39 {
		t.Errorf("expected recomputed bmi 29.39, got %v", out.Patient.BMI)
	}
	if out.Patient.Height != 1.75 {
		t.Errorf("expected height unchanged, got %v", out.Patient.Height)
	}
}

func TestHandler_DeletePatient(t *testing.T) {
	h, e := newTestHandler()
	h.svc.Create(context.Background(), validPatient("P001"))

	req := httptest.NewRequest(http.MethodDelete, "/delete/P001", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("P001")

	if err := h.DeletePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	if _, err := h.svc.Get(context.Background(), "P001"); err == nil {
		t.Error("expected record to be gone")
	}
}

func TestHandler_ViewAll(t *testing.T) {
	h, e := newTestHandler()
	h.svc.Create(context.Background(), validPatient("P001"))
	h.svc.Create(context.Background(), validPatient("P002"))

	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ViewAll(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out map[string]*Patient
	json.Unmarshal(rec.Body.Bytes(), &out)
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out["P001"] == nil || out["P001"].BMI == 0 {
		t.Errorf("expected derived fields keyed by id, got %+v", out)
	}
}

func TestHandler_SortPatients_DefaultsToAscending(t *testing.T) {
	h, e := newTestHandler()
	seedForQueries(t, h.svc)

	req := httptest.NewRequest(http.MethodGet, "/sort?sort_by=bmi", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SortPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var items []*Patient
	json.Unmarshal(rec.Body.Bytes(), &items)
	for i := 1; i < len(items); i++ {
		if items[i].BMI < items[i-1].BMI {
			t.Errorf("not sorted ascending at %d", i)
		}
	}
}

func TestHandler_SortPatients_InvalidField(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/sort?sort_by=name", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.SortPatients(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", he.Code)
	}
}

func TestHandler_SearchPatients(t *testing.T) {
	h, e := newTestHandler()
	seedForQueries(t, h.svc)

	req := httptest.NewRequest(http.MethodGet, "/search?q=OBESE", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SearchPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var items []*Patient
	json.Unmarshal(rec.Body.Bytes(), &items)
	if len(items) != 1 || items[0].ID != "P004" {
		t.Errorf("expected only the obese record, got %v", items)
	}
}

func TestHandler_SearchPatients_EmptyResultIsArray(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/search?q=zzz", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SearchPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected [] for no matches, got %s", body)
	}
}

func TestHandler_GetStats(t *testing.T) {
	h, e := newTestHandler()
	seedForQueries(t, h.svc)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetStats(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out struct {
		Total         int            `json:"total"`
		AverageBMI    float64        `json:"average_bmi"`
		VerdictCounts map[string]int `json:"verdict_counts"`
		CityCounts    map[string]int `json:"city_counts"`
	}
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Total != 4 || out.AverageBMI == 0 {
		t.Errorf("unexpected stats: %+v", out)
	}
	if len(out.CityCounts) != 4 {
		t.Errorf("expected 4 distinct cities, got %v", out.CityCounts)
	}
}

func TestHandler_ListPatients_Paged(t *testing.T) {
	h, e := newTestHandler()
	seedForQueries(t, h.svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients?limit=2&offset=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out struct {
		Data    []*Patient `json:"data"`
		Total   int        `json:"total"`
		HasMore bool       `json:"has_more"`
	}
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Total != 4 || len(out.Data) != 2 {
		t.Errorf("expected 2 of 4, got %d of %d", len(out.Data), out.Total)
	}
	if out.HasMore {
		t.Error("expected no more after last page")
	}
}

func TestHandler_Status(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Status(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Patient Management System") {
		t.Errorf("unexpected status body: %s", rec.Body.String())
	}
}
