package receipt

const (
	MissingReceiptMessage = "Section 'receipt' missing"
	MissingItemsMessage   = "Section 'items' missing"
)

type Summary struct {
	VAT          string           `json:"vat" yaml:"vat"`
	Operator     *string          `json:"operator" yaml:"operator"`
	Total        string           `json:"total" yaml:"total"`
	DateTime     any              `json:"date_time" yaml:"date_time"`
	Items        []AggregatedItem `json:"items,omitempty" yaml:"items,omitempty"`
	ItemsMissing bool             `json:"items_missing,omitempty" yaml:"items_missing,omitempty"`
}

// Normalize builds the printable summary of a lookup response. The boolean
// is false when the response has no receipt section, which callers report
// with MissingReceiptMessage rather than as a failure.
func Normalize(env Envelope) (Summary, bool) {
	if env.Document == nil || env.Document.Receipt.Empty() {
		return Summary{}, false
	}
	r := env.Document.Receipt

	summary := Summary{
		VAT:          FormatKopecks(valueOr(r.NDS10, 0).Add(valueOr(r.NDS18, 0))),
		Operator:     r.Operator,
		Total:        FormatKopecks(valueOr(r.TotalSum, 0)),
		DateTime:     r.DateTime,
		ItemsMissing: true,
	}

	if len(r.Items) > 0 {
		summary.Items = Aggregate(r.Items)
		summary.ItemsMissing = false
	}

	return summary, true
}
