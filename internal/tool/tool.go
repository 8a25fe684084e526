// Package tool describes the "buy-tickets" operation as the host runtime
// sees it: its declaration, the response envelope and the metadata passed
// through to the booking wizard.
package tool

import (
	"context"
	"encoding/json"

	"github.com/iliyamo/billetweb-booking/internal/model"
)

// Invoker runs one tool call.  Input is the raw JSON arguments sent by the
// host; tools without parameters ignore it.
type Invoker interface {
	Invoke(ctx context.Context, input json.RawMessage) (Result, error)
}

// Annotations are the capability hints declared to the host.
type Annotations struct {
	ReadOnlyHint    bool `json:"readOnlyHint"`
	DestructiveHint bool `json:"destructiveHint"`
	OpenWorldHint   bool `json:"openWorldHint"`
}

// CSP lists the origins the UI fragment may reach.
type CSP struct {
	ConnectDomains  []string `json:"connectDomains"`
	ResourceDomains []string `json:"resourceDomains"`
	RedirectDomains []string `json:"redirectDomains"`
}

// UIMeta is the widget-specific part of a Descriptor.
type UIMeta struct {
	CSP CSP `json:"csp"`
}

// DescriptorMeta wraps UIMeta under the "ui" key.
type DescriptorMeta struct {
	UI UIMeta `json:"ui"`
}

// Descriptor declares a tool to the host runtime.
type Descriptor struct {
	Name        string          `json:"name"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
	Annotations Annotations     `json:"annotations"`
	Meta        *DescriptorMeta `json:"_meta,omitempty"`
}

// Summary is the machine-readable part of a Result.
// AvailabilityNotes is omitted entirely when there is nothing to report.
type Summary struct {
	Title             string   `json:"title"`
	Venue             string   `json:"venue"`
	Dates             []string `json:"dates"`
	Pricing           []string `json:"pricing"`
	AvailabilityNotes []string `json:"availabilityNotes,omitempty"`
}

// Content is one block of conversational output.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Meta is passed opaquely to the UI layer and is the booking wizard's only
// data source.
type Meta struct {
	Sessions []model.AggregatedSession `json:"sessions"`
	Tickets  []model.TicketTier        `json:"tickets"`
	ShopBase string                    `json:"shopBase"`
	CoverURL string                    `json:"coverUrl"`
}

// Result is the envelope returned for a successful tool call.
type Result struct {
	StructuredContent Summary   `json:"structuredContent"`
	Content           []Content `json:"content"`
	Meta              Meta      `json:"_meta"`
}
