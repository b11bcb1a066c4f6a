// Package pricing quotes a garment design and splits a quoted total into the
// figures shown to the user.
package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/tailor/internal/design"
)

// DefaultServiceFee is the flat tailoring fee included in every price.
const DefaultServiceFee = 50

// Pricebook holds the base prices a quote is built from.
type Pricebook struct {
	Fabrics     map[string]float64      // fabric id -> material cost
	Styles      map[string]float64      // style id -> pattern cost
	SizeFactors map[design.Size]float64 // multiplies material cost
	FitExtras   map[design.Fit]float64  // flat surcharge
	Fallback    float64                 // material cost for unknown fabrics and styles
}

// DefaultPricebook matches the embedded catalog.
func DefaultPricebook() Pricebook {
	return Pricebook{
		Fabrics: map[string]float64{
			"cotton":    40,
			"linen":     60,
			"silk":      120,
			"wool":      90,
			"denim":     55,
			"velvet":    85,
			"leather":   160,
			"polyester": 25,
		},
		Styles: map[string]float64{
			"tshirt": 30,
			"hoodie": 60,
			"blazer": 140,
			"dress":  80,
			"coat":   150,
			"skirt":  45,
		},
		SizeFactors: map[design.Size]float64{
			design.SizeXS:  0.9,
			design.SizeS:   0.95,
			design.SizeM:   1,
			design.SizeL:   1.1,
			design.SizeXL:  1.2,
			design.SizeXXL: 1.3,
		},
		FitExtras: map[design.Fit]float64{
			design.FitTailored: 40,
			design.FitSlim:     10,
		},
		Fallback: 50,
	}
}

// Engine computes quotes from a pricebook.
type Engine struct {
	book Pricebook
	fee  float64
}

// NewEngine creates an engine. A negative fee is treated as zero.
func NewEngine(book Pricebook, serviceFee float64) *Engine {
	return &Engine{book: book, fee: math.Max(serviceFee, 0)}
}

// ServiceFee returns the fee added to every quote.
func (e *Engine) ServiceFee() float64 {
	return e.fee
}

// Quote prices a request: (fabric + style) scaled by size, plus the fit
// surcharge and the service fee, rounded to whole units.
func (e *Engine) Quote(req design.Request) float64 {
	material := e.lookup(e.book.Fabrics, req.FabricID) + e.lookup(e.book.Styles, req.StyleID)

	factor := 1.0
	if f, ok := e.book.SizeFactors[design.Size(req.Size)]; ok {
		factor = f
	}
	extra := e.book.FitExtras[design.Fit(req.FitType)]

	return math.Round(material*factor + extra + e.fee)
}

func (e *Engine) lookup(prices map[string]float64, id string) float64 {
	if p, ok := prices[id]; ok {
		return p
	}
	return e.book.Fallback
}

// Breakdown is the display split of a total price.
type Breakdown struct {
	FabricCost float64
	ServiceFee float64
	Total      float64
}

// Split derives the breakdown shown next to a result. A zero total is shown
// as is while its fabric cost comes out as zero. The split is for display
// only and never feeds back into a quote.
func Split(total, serviceFee float64) Breakdown {
	base := total
	if base == 0 {
		base = serviceFee
	}
	return Breakdown{
		FabricCost: base - serviceFee,
		ServiceFee: serviceFee,
		Total:      total,
	}
}

// Format renders an amount with the currency symbol in front and comma
// thousands separators, dropping the fraction when it is zero.
func Format(currency string, amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	whole := int64(amount)
	cents := int64(math.Round((amount - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	s := strconv.FormatInt(whole, 10)
	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + len(currency) + 4)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(currency)

	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	if cents > 0 {
		b.WriteByte('.')
		if cents < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.FormatInt(cents, 10))
	}
	return b.String()
}
