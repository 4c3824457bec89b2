package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ledgerpro/internal/core"

	"github.com/rs/zerolog"
)

// InvoiceWriter is the ledger operation the agent is allowed to perform.
type InvoiceWriter interface {
	AddInvoice(ctx context.Context, inv core.Invoice) (core.Invoice, error)
}

// Action reports one tool call and its outcome.
type Action struct {
	Tool    string `json:"tool"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Reply struct {
	Text    string   `json:"text"`
	Actions []Action `json:"actions"`
}

// Agent turns a natural-language request into ledger operations through
// model tool calls.
type Agent struct {
	model ModelClient
	now   func() time.Time
	log   zerolog.Logger
}

func NewAgent(model ModelClient, log zerolog.Logger) *Agent {
	return &Agent{model: model, now: time.Now, log: log}
}

// Ask sends prompt to the model with the current book as context and executes
// the tool calls it returns, in order. A failed tool call is reported in the
// reply and does not stop the remaining calls.
func (a *Agent) Ask(ctx context.Context, prompt string, book core.Snapshot, w InvoiceWriter) (*Reply, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: empty prompt", core.ErrInvalidInput)
	}

	registry, err := a.registry(book, w)
	if err != nil {
		return nil, err
	}

	resp, err := a.model.Respond(ctx, ModelRequest{
		Instructions: instructions(book),
		Prompt:       prompt,
		Tools:        registry,
	})
	if err != nil {
		return nil, err
	}

	reply := &Reply{Text: strings.TrimSpace(resp.Text), Actions: []Action{}}
	for _, call := range resp.ToolCalls {
		action := Action{Tool: call.Name}
		tool, ok := registry.Get(call.Name)
		if !ok {
			action.Error = "unknown operation"
		} else if summary, err := tool.Handler(ctx, json.RawMessage(call.Arguments)); err != nil {
			action.Error = err.Error()
		} else {
			action.Summary = summary
		}
		a.log.Info().Str("tool", call.Name).Str("error", action.Error).Msg("assistant tool call")
		reply.Actions = append(reply.Actions, action)
	}
	return reply, nil
}

// String renders the reply as the model text followed by one line per action.
func (r *Reply) String() string {
	var b strings.Builder
	b.WriteString(r.Text)
	for _, act := range r.Actions {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		if act.Error != "" {
			fmt.Fprintf(&b, "✗ %s: %s", act.Tool, act.Error)
		} else {
			fmt.Fprintf(&b, "✓ %s", act.Summary)
		}
	}
	return b.String()
}

func instructions(book core.Snapshot) string {
	sales := core.Summarize(mustBook(book), "").TotalSales
	return fmt.Sprintf(`You are the bookkeeping assistant of %s.
The shop has %d inventory items and total sales of %s %s.
Prices are taken from inventory; never add taxes.
When the user asks to record a sale or a purchase, call add_invoice with the
person's name and the item names exactly as the user wrote them.
Answer briefly, in the language the user writes in.`,
		book.Settings.ShopName, len(book.Inventory), sales.StringFixed(2), book.Settings.Currency)
}

// mustBook rebuilds a book for read-only figures. The snapshot comes from a
// live book, so it always builds; an empty book is used otherwise.
func mustBook(s core.Snapshot) *core.Book {
	b, err := core.BookFromSnapshot(s)
	if err != nil {
		return core.NewBook()
	}
	return b
}
