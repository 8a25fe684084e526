package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/billetweb-booking/internal/model"
	"github.com/iliyamo/billetweb-booking/internal/provider"
	"github.com/iliyamo/billetweb-booking/internal/service"
	"github.com/iliyamo/billetweb-booking/internal/tool"
)

type MockInvoker struct {
	mock.Mock
}

func (m *MockInvoker) Invoke(ctx context.Context, input json.RawMessage) (tool.Result, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(tool.Result), args.Error(1)
}

func setup(inv tool.Invoker) *echo.Echo {
	reg := tool.NewRegistry()
	reg.Register(tool.BuyTicketsDescriptor(tool.DefaultProfile()), inv)
	h := NewToolHandler(reg, nil)

	e := echo.New()
	e.GET("/healthz", Health)
	e.GET("/v1/tools", h.ListTools)
	e.POST("/v1/tools/:name/call", h.CallTool)
	return e
}

func call(e *echo.Echo, name, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/tools/"+name+"/call", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	setup(new(MockInvoker)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListTools(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	setup(new(MockInvoker)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tools", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tools []tool.Descriptor `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Tools, 1)
	assert.Equal(t, "buy-tickets", body.Tools[0].Name)
	assert.True(t, body.Tools[0].Annotations.ReadOnlyHint)
}

func TestCallToolSuccess(t *testing.T) {
	t.Parallel()
	res := tool.Result{
		StructuredContent: tool.Summary{Title: "Esperanza", Dates: []string{"2026-04-24 20:00"}, Pricing: []string{"Adulte: 18€"}},
		Content:           []tool.Content{{Type: "text", Text: "Esperanza"}},
		Meta: tool.Meta{
			Sessions: []model.AggregatedSession{{ID: "1", Start: "2026-04-24 20:00", Remaining: 50, Quota: 100, Sold: 50}},
			Tickets:  []model.TicketTier{{ID: "a", Name: "Adulte", Price: 18}},
		},
	}
	inv := new(MockInvoker)
	inv.On("Invoke", mock.Anything, json.RawMessage("{}")).Return(res, nil).Once()

	rec := call(setup(inv), "buy-tickets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got, "structuredContent")
	assert.Contains(t, got, "content")
	assert.Contains(t, got, "_meta")
	assert.NotContains(t, string(got["structuredContent"]), "availabilityNotes")
	inv.AssertExpectations(t)
}

func TestCallToolErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody map[string]any
	}{
		{
			name:     "upstream failure",
			err:      fmt.Errorf("fetch feeds: %w", &provider.UpstreamError{Resource: provider.ResourceAvailability, StatusCode: 503}),
			wantCode: http.StatusBadGateway,
			wantBody: map[string]any{"error": "upstream_error", "resource": "avail", "status": float64(503)},
		},
		{
			name:     "malformed record",
			err:      &service.MalformedRecordError{Resource: "dates", ID: "1", Field: "quota", Value: "x"},
			wantCode: http.StatusBadGateway,
			wantBody: map[string]any{"error": "upstream_malformed", "resource": "dates", "field": "quota"},
		},
		{
			name:     "anything else",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantBody: map[string]any{"error": "internal_error"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			inv := new(MockInvoker)
			inv.On("Invoke", mock.Anything, mock.Anything).Return(tool.Result{}, tt.err).Once()

			rec := call(setup(inv), "buy-tickets", "{}")
			assert.Equal(t, tt.wantCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
			assert.NotContains(t, got, "structuredContent")
		})
	}
}

func TestCallUnknownTool(t *testing.T) {
	t.Parallel()
	inv := new(MockInvoker)
	rec := call(setup(inv), "sell-tickets", "{}")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"tool_not_found"}`, rec.Body.String())
	inv.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}

func TestCallToolRejectsInvalidJSON(t *testing.T) {
	t.Parallel()
	inv := new(MockInvoker)
	rec := call(setup(inv), "buy-tickets", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	inv.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}
