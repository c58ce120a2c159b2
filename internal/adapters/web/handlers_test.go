package web_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerdocs/internal/adapters/web"
	"ledgerdocs/internal/app"
	"ledgerdocs/internal/core"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var (
	stubUserID   = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	stubTenantID = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

// stubService is a canned-response ApplicationService for handler tests.
type stubService struct {
	generateResult *app.GenerationResult
	entries        []core.JournalEntry
	statement      *core.FinancialStatement
	lastPrincipal  app.Principal
}

func (s *stubService) AuthenticateUser(_ context.Context, username, password string) (*core.User, error) {
	if username == "tester" && password == "secret" {
		return &core.User{ID: stubUserID, TenantID: stubTenantID, Username: "tester", Role: "accountant"}, nil
	}
	return nil, core.ErrInvalidCredentials
}

func (s *stubService) GetUser(_ context.Context, id uuid.UUID) (*core.User, error) {
	return &core.User{ID: id, TenantID: stubTenantID, Username: "tester"}, nil
}

func (s *stubService) CreateDocument(_ context.Context, p app.Principal, req app.CreateDocumentRequest) (*core.Document, error) {
	s.lastPrincipal = p
	return &core.Document{ID: 1, TenantID: p.TenantID, OriginalName: req.OriginalName, Type: core.DocTypeVendorInvoice}, nil
}

func (s *stubService) ListDocuments(_ context.Context, p app.Principal) ([]core.Document, error) {
	s.lastPrincipal = p
	return nil, nil
}

func (s *stubService) GetDocument(context.Context, app.Principal, int) (*core.Document, error) {
	return nil, core.ErrDocumentNotFound
}

func (s *stubService) ClassifyDocument(context.Context, app.Principal, int) (*core.Document, error) {
	return nil, core.ErrDocumentNotFound
}

func (s *stubService) DeleteDocument(context.Context, app.Principal, int) error {
	return core.ErrDocumentNotFound
}

func (s *stubService) GenerateJournalEntries(_ context.Context, p app.Principal) (*app.GenerationResult, error) {
	s.lastPrincipal = p
	return s.generateResult, nil
}

func (s *stubService) CreateManualEntries(_ context.Context, _ app.Principal, drafts []core.EntryDraft) ([]core.JournalEntry, error) {
	out := make([]core.JournalEntry, len(drafts))
	for i, d := range drafts {
		out[i] = core.JournalEntry{ID: i + 1, JournalID: d.JournalID, AccountCode: d.AccountCode, Debit: d.Debit, Credit: d.Credit}
	}
	return out, nil
}

func (s *stubService) ListJournalEntries(context.Context, app.Principal, string) ([]core.JournalEntry, error) {
	return s.entries, nil
}

func (s *stubService) DeleteJournalEntry(context.Context, app.Principal, int) error {
	return core.ErrEntryNotFound
}

func (s *stubService) DeleteDocumentEntries(context.Context, app.Principal, int) (int64, error) {
	return 0, core.ErrDocumentNotFound
}

func (s *stubService) DeleteGeneratedEntries(context.Context, app.Principal) (int64, error) {
	return 4, nil
}

func (s *stubService) GenerateStatement(_ context.Context, _ app.Principal, t core.StatementType, period string) (*core.FinancialStatement, error) {
	return s.statement, nil
}

func (s *stubService) LatestStatement(context.Context, app.Principal, core.StatementType, string) (*core.FinancialStatement, error) {
	return s.statement, nil
}

func newTestHandler(svc app.ApplicationService) http.Handler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return web.NewHandler(svc, "", testSecret, time.Hour, logger)
}

func authCookie(t *testing.T) *http.Cookie {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":   stubUserID.String(),
		"tenant_id": stubTenantID.String(),
		"role":      "accountant",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return &http.Cookie{Name: "auth_token", Value: signed}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	handler := newTestHandler(&stubService{})

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/documents"},
		{http.MethodPost, "/api/journal-entries/generate"},
		{http.MethodPost, "/api/reports/trial-balance/generate"},
		{http.MethodDelete, "/api/journal-entries"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestLoginSetsCookie(t *testing.T) {
	handler := newTestHandler(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"tester","password":"secret"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	handler := newTestHandler(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"tester","password":"wrong"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp struct {
		Code      string `json:"code"`
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "UNAUTHORIZED", resp.Code)
	assert.NotEmpty(t, resp.RequestID)
}

func TestGenerateJournalEntries_UsesPrincipalTenant(t *testing.T) {
	svc := &stubService{
		generateResult: &app.GenerationResult{Processed: 2, Skipped: 1, Created: 4, Entries: []core.JournalEntry{}},
	}
	handler := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/journal-entries/generate", nil)
	req.AddCookie(authCookie(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result app.GenerationResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 4, result.Created)

	// Tenant comes from the token, never from the request.
	assert.Equal(t, stubTenantID, svc.lastPrincipal.TenantID)
	assert.Equal(t, stubUserID, svc.lastPrincipal.UserID)
}

func TestDownloadJournalEntriesCSV(t *testing.T) {
	svc := &stubService{
		entries: []core.JournalEntry{
			{
				JournalID: "JRN-1_DR", Date: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
				AccountCode: "5100", AccountName: "Vendor Expenses",
				Debit: decimal.NewFromInt(125000), Narration: "=SUM(A1) injection attempt", Entity: "ABC Corp",
			},
		},
	}
	handler := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/journal-entries/download", nil)
	req.AddCookie(authCookie(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "journal-entries.csv")

	body := rec.Body.String()
	assert.Contains(t, body, "JRN-1_DR,2024-04-10,5100,Vendor Expenses,125000.00,0.00")
	// Formula-triggering cells are neutralized.
	assert.Contains(t, body, "'=SUM(A1) injection attempt")
}

func TestManualEntriesValidation(t *testing.T) {
	handler := newTestHandler(&stubService{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing entries", `{}`, http.StatusBadRequest},
		{"missing account code", `{"entries":[{"debit_amount":"10"}]}`, http.StatusBadRequest},
		{"both sides set", `{"entries":[{"account_code":"1000","debit_amount":"10","credit_amount":"10"}]}`, http.StatusBadRequest},
		{"valid", `{"entries":[{"account_code":"1000","debit_amount":"10"},{"account_code":"4100","credit_amount":"10"}]}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/journal-entries", strings.NewReader(tt.body))
			req.AddCookie(authCookie(t))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestUnknownReportType(t *testing.T) {
	handler := newTestHandler(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/reports/cashbook/generate", nil)
	req.AddCookie(authCookie(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadReportCSV(t *testing.T) {
	tb := core.TrialBalance{
		Accounts: []core.TrialBalanceLine{
			{AccountCode: "1000", AccountName: "Bank Account", Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		},
		TotalDebits:  decimal.NewFromInt(500),
		TotalCredits: decimal.NewFromInt(500),
		IsBalanced:   true,
	}
	data, err := json.Marshal(tb)
	require.NoError(t, err)

	svc := &stubService{statement: &core.FinancialStatement{Type: core.StatementTrialBalance, Data: data, IsValid: true}}
	handler := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/trial-balance/download", nil)
	req.AddCookie(authCookie(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Account Code,Account Name,Debit,Credit")
	assert.Contains(t, body, "1000,Bank Account,500.00,0.00")
	assert.Contains(t, body, "Total,,500.00,500.00")
}

func TestDownloadReportMissing(t *testing.T) {
	handler := newTestHandler(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/reports/balance-sheet/download", nil)
	req.AddCookie(authCookie(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	handler := newTestHandler(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
