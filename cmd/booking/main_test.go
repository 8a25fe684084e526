package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/billetweb-booking/internal/model"
	"github.com/iliyamo/billetweb-booking/internal/tool"
	"github.com/iliyamo/billetweb-booking/internal/wizard"
)

const apiURL = "http://tools.test"

func meta() *tool.Meta {
	return &tool.Meta{
		Sessions: []model.AggregatedSession{
			{ID: "s1", Start: "2026-04-24 20:00", Remaining: 0, Sold: 100, Quota: 100},
			{ID: "s2", Start: "2026-04-25 20:00", Remaining: 70, Sold: 30, Quota: 100},
		},
		Tickets:  []model.TicketTier{{ID: "t1", Name: "Adulte", Price: 18}},
		ShopBase: "https://www.billetweb.fr/shop.php?event=x",
	}
}

type recordingOpener struct{ urls []string }

func (r *recordingOpener) OpenExternal(_ context.Context, url string) error {
	r.urls = append(r.urls, url)
	return nil
}

func TestRunBooksSession(t *testing.T) {
	t.Parallel()
	w := wizard.New(wizard.Branding{Title: "Esperanza"})
	w.Load(meta())
	op := &recordingOpener{}
	var out bytes.Buffer

	err := run(context.Background(), w, strings.NewReader("n\n1\n2\n1\no\n"), &out, op)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.billetweb.fr/shop.php?event=x&session=s2"}, op.urls)
	assert.Contains(t, out.String(), "Cette séance est complète.")
}

func TestRunEndsOnEOF(t *testing.T) {
	t.Parallel()
	w := wizard.New(wizard.Branding{})
	w.Load(meta())
	err := run(context.Background(), w, strings.NewReader("n\nb\nfoo\n"), io.Discard, &recordingOpener{})
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, wizard.StepIntro, w.Selection().Step)
}

func TestToolClientCall(t *testing.T) {
	t.Parallel()
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder(http.MethodPost, apiURL+"/v1/tools/buy-tickets/call",
		func(req *http.Request) (*http.Response, error) {
			if !strings.HasPrefix(req.Header.Get("Authorization"), "Bearer ") {
				return httpmock.NewStringResponse(http.StatusUnauthorized, `{"error":"missing bearer token"}`), nil
			}
			return httpmock.NewJsonResponse(http.StatusOK, tool.Result{Meta: *meta()})
		})
	c := &toolClient{BaseURL: apiURL, Secret: "s", HostID: "cli", HTTP: &http.Client{Transport: mt}}

	res, err := c.Call(context.Background(), tool.BuyTicketsName)
	require.NoError(t, err)
	assert.Len(t, res.Meta.Sessions, 2)
	assert.Equal(t, "t1", res.Meta.Tickets[0].ID)
}

func TestToolClientCallFailure(t *testing.T) {
	t.Parallel()
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder(http.MethodPost, apiURL+"/v1/tools/buy-tickets/call",
		httpmock.NewStringResponder(http.StatusBadGateway, `{"error":"upstream_error","resource":"avail","status":500}`))
	c := &toolClient{BaseURL: apiURL, HTTP: &http.Client{Transport: mt}}

	_, err := c.Call(context.Background(), tool.BuyTicketsName)
	var ce *callError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, http.StatusBadGateway, ce.Status)
	assert.Contains(t, ce.Body, "upstream_error")
}
