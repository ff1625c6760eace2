package intake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	svc, _ := newTestService(t)
	e := echo.New()
	NewHandler(svc).RegisterRoutes(e.Group("/api/v1"))
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeDraft(t *testing.T, rec *httptest.ResponseRecorder) Draft {
	t.Helper()
	var d Draft
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode draft: %v (body %s)", err, rec.Body.String())
	}
	return d
}

func TestWizard_FullFlow(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/api/v1/intake", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("start: status = %d", rec.Code)
	}
	d := decodeDraft(t, rec)
	base := "/api/v1/intake/" + d.ID.String()

	payloads := []string{
		`{"patient_number":"P-1001","age":58,"gender":"Männlich"}`,
		`{"mts_category":"Rot"}`,
		`{"symptoms":["Brustschmerz"]}`,
		`{"vitals":{"blood_pressure":"150/95"}}`,
		`{"suspected_diagnosis":"Akutes Koronarsyndrom"}`,
	}
	for i, body := range payloads {
		rec = do(t, e, http.MethodPost, base+"/next", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("next %d: status = %d, body %s", i, rec.Code, rec.Body.String())
		}
	}

	rec = do(t, e, http.MethodPost, base+"/analyze", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze: status = %d, body %s", rec.Code, rec.Body.String())
	}
	d = decodeDraft(t, rec)
	if d.Outcome == nil || !d.Outcome.Matched {
		t.Fatalf("expected matched outcome: %+v", d.Outcome)
	}

	rec = do(t, e, http.MethodPost, base+"/submit", `{"selected_tests":["TROP","CK","BGA"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: status = %d, body %s", rec.Code, rec.Body.String())
	}

	// the draft is gone afterwards
	rec = do(t, e, http.MethodGet, base, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after submit: status = %d, want 404", rec.Code)
	}
}

func TestWizard_NextValidation(t *testing.T) {
	e := newTestServer(t)
	d := decodeDraft(t, do(t, e, http.MethodPost, "/api/v1/intake", ""))

	rec := do(t, e, http.MethodPost, "/api/v1/intake/"+d.ID.String()+"/next",
		`{"patient_number":"","age":58,"gender":"Männlich"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWizard_BackAtFirstStep(t *testing.T) {
	e := newTestServer(t)
	d := decodeDraft(t, do(t, e, http.MethodPost, "/api/v1/intake", ""))

	rec := do(t, e, http.MethodPost, "/api/v1/intake/"+d.ID.String()+"/back", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWizard_UnknownDraft(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, http.MethodPost, "/api/v1/intake/5b5c4efc-5b88-4f0e-9f32-1a2b3c4d5e6f/analyze", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestWizard_InvalidDraftID(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, http.MethodGet, "/api/v1/intake/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
