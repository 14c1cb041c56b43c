package history

import "strings"

// Kind is the coarse classification of a recorded calculation.
type Kind string

// Kinds in classification precedence order.
const (
	KindBasic      Kind = "basic"
	KindScientific Kind = "scientific"
	KindFinancial  Kind = "financial"
	KindConversion Kind = "conversion"
	KindOther      Kind = "other"
)

// Kinds lists every Kind in precedence order.
var Kinds = []Kind{KindBasic, KindScientific, KindFinancial, KindConversion, KindOther}

// classifiers are checked in order; the first match wins. The order matters:
// "Convert: -40 celsius" is basic because of the minus sign.
var classifiers = []struct {
	kind     Kind
	keywords []string
}{
	{kind: KindBasic, keywords: []string{"+", "-", "*", "/", "basic"}},
	{kind: KindScientific, keywords: []string{"sin", "cos", "tan", "log", "scientific"}},
	{kind: KindFinancial, keywords: []string{"interest", "emi", "gst", "currency", "financial"}},
	{kind: KindConversion, keywords: []string{"convert"}},
}

// Classify assigns a calculation text to a Kind.
func Classify(calculation string) Kind {
	calc := strings.ToLower(calculation)
	for _, c := range classifiers {
		for _, kw := range c.keywords {
			if strings.Contains(calc, kw) {
				return c.kind
			}
		}
	}
	return KindOther
}

// Stats summarizes the stored history.
type Stats struct {
	ByType         map[Kind]int `json:"calculations_by_type,omitempty"`
	FirstTimestamp string       `json:"first_calculation,omitempty"`
	LastTimestamp  string       `json:"last_calculation,omitempty"`
	Total          int          `json:"total_calculations"`
}

// Stats classifies every entry. First is the oldest entry, Last the newest.
func (s *Store) Stats() Stats {
	entries := s.log.Items()
	if len(entries) == 0 {
		return Stats{}
	}

	byType := make(map[Kind]int)
	for _, e := range entries {
		byType[Classify(e.Calculation)]++
	}

	return Stats{
		Total:          len(entries),
		ByType:         byType,
		FirstTimestamp: entries[len(entries)-1].Timestamp,
		LastTimestamp:  entries[0].Timestamp,
	}
}
