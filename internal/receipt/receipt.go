// Package receipt renders a finalized order snapshot into the payload and
// register-tape text shown after payment completes.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/bluecup/backend-pos/internal/order"
	"github.com/bluecup/backend-pos/internal/pricing"
)

const tapeWidth = 40

// Config carries the store details printed on every receipt.
type Config struct {
	StoreName string
	Currency  string
}

// Line is one printed order row.
type Line struct {
	Quantity      int      `json:"quantity"`
	Name          string   `json:"name"`
	Options       []string `json:"options,omitempty"`
	UnitPrice     string   `json:"unitPrice"`
	ExtendedPrice string   `json:"extendedPrice"`
}

// Receipt is the rendered result handed back to the register UI.
type Receipt struct {
	StoreName string    `json:"storeName"`
	Currency  string    `json:"currency"`
	IssuedAt  time.Time `json:"issuedAt"`
	Lines     []Line    `json:"lines"`
	Subtotal  string    `json:"subtotal"`
	Tax       string    `json:"tax"`
	Total     string    `json:"total"`
}

// Render converts a finalized snapshot into a Receipt.
func Render(snapshot order.Snapshot, cfg Config, issuedAt time.Time) Receipt {
	lines := make([]Line, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		names := make([]string, 0, len(item.Options))
		for _, opt := range item.Options {
			names = append(names, opt.Name)
		}
		lines = append(lines, Line{
			Quantity:      item.Quantity,
			Name:          item.ProductName,
			Options:       names,
			UnitPrice:     pricing.Format(item.UnitPrice),
			ExtendedPrice: pricing.Format(item.ExtendedPrice),
		})
	}
	return Receipt{
		StoreName: cfg.StoreName,
		Currency:  cfg.Currency,
		IssuedAt:  issuedAt.UTC(),
		Lines:     lines,
		Subtotal:  pricing.Format(snapshot.Totals.Subtotal),
		Tax:       pricing.Format(snapshot.Totals.Tax),
		Total:     pricing.Format(snapshot.Totals.Total),
	}
}

// Text renders the receipt as fixed-width register tape.
func (r Receipt) Text() string {
	var b strings.Builder
	center(&b, r.StoreName)
	center(&b, r.IssuedAt.Format("2006-01-02 15:04"))
	rule(&b)
	for _, line := range r.Lines {
		left := fmt.Sprintf("%d x %s", line.Quantity, line.Name)
		row(&b, left, line.ExtendedPrice)
		for _, opt := range line.Options {
			row(&b, "  + "+opt, "")
		}
	}
	rule(&b)
	row(&b, "Subtotal", r.Subtotal)
	row(&b, "Tax", r.Tax)
	row(&b, "Total "+r.Currency, r.Total)
	rule(&b)
	center(&b, "Thank you!")
	return b.String()
}

func center(b *strings.Builder, text string) {
	if len(text) >= tapeWidth {
		b.WriteString(text)
	} else {
		pad := (tapeWidth - len(text)) / 2
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(text)
	}
	b.WriteByte('\n')
}

func rule(b *strings.Builder) {
	b.WriteString(strings.Repeat("-", tapeWidth))
	b.WriteByte('\n')
}

func row(b *strings.Builder, left, right string) {
	gap := tapeWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(right)
	b.WriteByte('\n')
}
