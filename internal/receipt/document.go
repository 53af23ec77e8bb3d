package receipt

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Envelope is the top level of a ticket lookup response.
type Envelope struct {
	Document *Document `json:"document"`
}

type Document struct {
	Receipt *Receipt `json:"receipt"`
}

// Receipt holds the fields of the receipt section the summary is built from.
// Monetary fields are integer kopecks as sent by the service.
type Receipt struct {
	NDS10    decimal.NullDecimal `json:"nds10"`
	NDS18    decimal.NullDecimal `json:"nds18"`
	Operator *string             `json:"operator"`
	TotalSum decimal.NullDecimal `json:"totalSum"`
	DateTime any                 `json:"dateTime"`
	Items    []Item              `json:"items"`

	fields int
}

type Item struct {
	Name     string              `json:"name"`
	Price    decimal.NullDecimal `json:"price"`
	Quantity decimal.NullDecimal `json:"quantity"`
	Sum      decimal.NullDecimal `json:"sum"`
}

func (r *Receipt) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	type plain Receipt
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*r = Receipt(decoded)
	r.fields = len(fields)
	return nil
}

// Empty reports whether the section carried no keys at all.
func (r *Receipt) Empty() bool {
	return r == nil || r.fields == 0
}
