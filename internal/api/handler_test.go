package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fante86/calenpag/internal/store"
)

const sampleCSV = `fornecedor_nome;numero_documento;data_vencimento;data_pagamento;valor_em_aberto;valor_pago_total;status_consolidado;conta_financeira;descricao_planejamento;observacao
Fornecedor Alfa;NF-100;2024-03-15;;150,00;0,00;A Pagar;Banco Itaú;Compras;urgente
Fornecedor Beta;NF-101;15/03/2024;16/03/2024;0,00;200,00;Pago;Banco Itaú;;
Fornecedor Gama;NF-102;2024-03-20;;80,50;0,00;A Pagar;Caixa;;
Fornecedor Morto;NF-103;2024-03-15;;50,00;0,00;Cancelado;;;
Fornecedor Ruim;NF-104;sem data;;10,00;0,00;A Pagar;;;
Fornecedor Velho;NF-105;2023-11-02;;30,00;0,00;A Pagar;;;
`

func newTestRouter(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "calenpag.db")
	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	h := NewHandler(Options{Store: st, ExportDir: t.TempDir()})
	h.now = func() time.Time {
		return time.Date(2024, time.March, 20, 10, 0, 0, 0, time.Local)
	}

	r := gin.New()
	api := r.Group("/api")
	h.RegisterRoutes(api)
	return r, h
}

func doUpload(t *testing.T, r *gin.Engine, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestUploadNormalizesAndSelectsLatestYear(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doUpload(t, r, "contas.csv", sampleCSV)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	body := decode(t, w)

	if got := body["recordCount"].(float64); got != 4 {
		t.Errorf("recordCount = %v, want 4", got)
	}
	if got := body["skipped"].(float64); got != 1 {
		t.Errorf("skipped = %v, want 1", got)
	}
	if got := body["cancelled"].(float64); got != 1 {
		t.Errorf("cancelled = %v, want 1", got)
	}

	years := body["years"].([]any)
	if len(years) != 2 || years[0].(float64) != 2023 || years[1].(float64) != 2024 {
		t.Errorf("years = %v, want [2023 2024]", years)
	}

	sel := body["selection"].(map[string]any)
	if sel["year"].(float64) != 2024 {
		t.Errorf("selection year = %v, want latest year 2024", sel["year"])
	}
}

func TestUploadMissingColumns(t *testing.T) {
	r, _ := newTestRouter(t)

	csv := "fornecedor_nome;data_vencimento\nAlfa;2024-03-15\n"
	w := doUpload(t, r, "contas.csv", csv)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	body := decode(t, w)

	missing := body["missingColumns"].([]any)
	if len(missing) != 3 {
		t.Errorf("missingColumns = %v, want valor_em_aberto, valor_pago_total, status_consolidado", missing)
	}
	if !strings.Contains(body["error"].(string), "colunas obrigatórias ausentes") {
		t.Errorf("error = %q", body["error"])
	}
}

func TestUploadRejectsExtension(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doUpload(t, r, "contas.pdf", "whatever")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestCalendarRequiresUpload(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/calendar", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestYearsEmptyWithoutUpload(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/years", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if years := body["years"].([]any); len(years) != 0 {
		t.Errorf("years = %v, want empty", years)
	}
}

func TestCalendarMonthView(t *testing.T) {
	r, _ := newTestRouter(t)
	doUpload(t, r, "contas.csv", sampleCSV)

	w := doJSON(t, r, http.MethodGet, "/api/calendar?year=2024&month=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	body := decode(t, w)

	cal := body["calendar"].(map[string]any)
	if cal["monthName"].(string) != "Março" {
		t.Errorf("monthName = %v, want Março", cal["monthName"])
	}

	stats := cal["stats"].(map[string]any)
	// 150,00 + 80,50 pending; 200,00 paid.
	if stats["pendingTotal"].(string) != "R$ 230,50" {
		t.Errorf("pendingTotal = %v, want R$ 230,50", stats["pendingTotal"])
	}
	if stats["paidTotal"].(string) != "R$ 200,00" {
		t.Errorf("paidTotal = %v, want R$ 200,00", stats["paidTotal"])
	}

	days := body["days"].(map[string]any)
	d15 := days["15"].(map[string]any)
	if d15["pendingCount"].(float64) != 1 || d15["paidCount"].(float64) != 1 {
		t.Errorf("day 15 aggregate = %v", d15)
	}
	if recs, ok := d15["records"]; ok && recs != nil {
		t.Errorf("day aggregates in the month view must not carry records: %v", recs)
	}
}

func TestCalendarQueryUpdatesSelection(t *testing.T) {
	r, _ := newTestRouter(t)
	doUpload(t, r, "contas.csv", sampleCSV)

	doJSON(t, r, http.MethodGet, "/api/calendar?year=2023&month=11", nil)

	w := doJSON(t, r, http.MethodGet, "/api/status", nil)
	body := decode(t, w)
	sel := body["selection"].(map[string]any)
	if sel["year"].(float64) != 2023 || sel["month"].(float64) != 11 {
		t.Errorf("selection = %v, want 2023-11", sel)
	}
}

func TestSelectMonthValidation(t *testing.T) {
	r, _ := newTestRouter(t)
	doUpload(t, r, "contas.csv", sampleCSV)

	w := doJSON(t, r, http.MethodPost, "/api/select", map[string]any{"year": 2024, "month": 13})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/select", map[string]any{"year": 2023, "month": 11})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestDayDrilldown(t *testing.T) {
	r, _ := newTestRouter(t)
	doUpload(t, r, "contas.csv", sampleCSV)

	w := doJSON(t, r, http.MethodGet, "/api/day?year=2024&month=3&day=15", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	body := decode(t, w)

	if body["date"].(string) != "15/03/2024" {
		t.Errorf("date = %v, want 15/03/2024", body["date"])
	}
	records := body["records"].([]any)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	// File order: the pending Alfa row precedes the paid Beta row.
	first := records[0].(map[string]any)
	if first["supplier"].(string) != "Fornecedor Alfa" {
		t.Errorf("first supplier = %v", first["supplier"])
	}
	if first["statusLabel"].(string) != "A PAGAR" {
		t.Errorf("first statusLabel = %v", first["statusLabel"])
	}
	if first["amount"].(string) != "R$ 150,00" {
		t.Errorf("first amount = %v", first["amount"])
	}

	second := records[1].(map[string]any)
	if second["statusLabel"].(string) != "PAGO" {
		t.Errorf("second statusLabel = %v", second["statusLabel"])
	}
	if second["paymentDate"].(string) != "16/03/2024" {
		t.Errorf("second paymentDate = %v", second["paymentDate"])
	}
}

func TestDayEmptyIsNotAnError(t *testing.T) {
	r, _ := newTestRouter(t)
	doUpload(t, r, "contas.csv", sampleCSV)

	w := doJSON(t, r, http.MethodGet, "/api/day?year=2024&month=3&day=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["count"].(float64) != 0 {
		t.Errorf("count = %v, want 0", body["count"])
	}
	if records := body["records"].([]any); len(records) != 0 {
		t.Errorf("records = %v, want empty list", records)
	}
}

func TestDaySelectAndClear(t *testing.T) {
	r, _ := newTestRouter(t)
	doUpload(t, r, "contas.csv", sampleCSV)

	w := doJSON(t, r, http.MethodPost, "/api/day/select", map[string]any{"day": 15})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	sel := decode(t, w)["selection"].(map[string]any)
	if sel["day"].(float64) != 15 {
		t.Errorf("selection day = %v, want 15", sel["day"])
	}

	w = doJSON(t, r, http.MethodPost, "/api/day/clear", nil)
	sel = decode(t, w)["selection"].(map[string]any)
	if _, ok := sel["day"]; ok {
		t.Errorf("selection after clear still carries day: %v", sel)
	}

	// Switching the month also closes the drilldown.
	doJSON(t, r, http.MethodPost, "/api/day/select", map[string]any{"day": 15})
	doJSON(t, r, http.MethodPost, "/api/select", map[string]any{"year": 2024, "month": 4})
	w = doJSON(t, r, http.MethodGet, "/api/status", nil)
	sel = decode(t, w)["selection"].(map[string]any)
	if _, ok := sel["day"]; ok {
		t.Errorf("selection after month switch still carries day: %v", sel)
	}
}

func TestStatusBeforeAndAfterUpload(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/status", nil)
	body := decode(t, w)
	if body["initialized"].(bool) {
		t.Fatal("initialized before any upload")
	}

	doUpload(t, r, "contas.csv", sampleCSV)

	w = doJSON(t, r, http.MethodGet, "/api/status", nil)
	body = decode(t, w)
	if !body["initialized"].(bool) {
		t.Fatal("not initialized after upload")
	}
	if body["filename"].(string) != "contas.csv" {
		t.Errorf("filename = %v", body["filename"])
	}
}

func TestUploadAuditLog(t *testing.T) {
	r, _ := newTestRouter(t)
	doUpload(t, r, "contas.csv", sampleCSV)
	doUpload(t, r, "ruim.csv", "fornecedor_nome\nAlfa\n")

	w := doJSON(t, r, http.MethodGet, "/api/uploads", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	items := decode(t, w)["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}

	newest := items[0].(map[string]any)
	if newest["status"].(string) != "rejected" {
		t.Errorf("newest status = %v, want rejected", newest["status"])
	}
	oldest := items[1].(map[string]any)
	if oldest["status"].(string) != "ok" {
		t.Errorf("oldest status = %v, want ok", oldest["status"])
	}
	if oldest["importedRows"].(float64) != 4 {
		t.Errorf("importedRows = %v, want 4", oldest["importedRows"])
	}
}
