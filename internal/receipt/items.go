package receipt

import "github.com/shopspring/decimal"

// missingValue is what an absent price, quantity or sum contributes to a bucket.
const missingValue = -1

type AggregatedItem struct {
	Code     string  `json:"code,omitempty" yaml:"code,omitempty"`
	Name     string  `json:"name" yaml:"name"`
	Price    string  `json:"price" yaml:"price"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
	Sum      string  `json:"sum" yaml:"sum"`
}

type bucket struct {
	code     string
	name     string
	price    decimal.Decimal
	quantity decimal.Decimal
	sum      decimal.Decimal
}

// Aggregate folds raw receipt lines into one entry per product. Lines are
// keyed by their numeric code when the label has one and by the normalized
// name otherwise; entries keep the order in which each key first appeared.
func Aggregate(items []Item) []AggregatedItem {
	index := make(map[string]int, len(items))
	buckets := make([]*bucket, 0, len(items))

	for _, item := range items {
		code, name := SplitLabel(item.Name)
		name = collapseSpaces(name)

		key := name
		if code != "" {
			key = code
		}

		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, &bucket{quantity: decimal.Zero, sum: decimal.Zero})
		}

		b := buckets[i]
		if code != "" {
			b.code = code
		}
		b.name = name
		b.price = valueOr(item.Price, missingValue)
		b.quantity = b.quantity.Add(valueOr(item.Quantity, missingValue))
		b.sum = b.sum.Add(valueOr(item.Sum, missingValue))
	}

	out := make([]AggregatedItem, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, AggregatedItem{
			Code:     b.code,
			Name:     b.name,
			Price:    FormatKopecks(b.price),
			Quantity: b.quantity.InexactFloat64(),
			Sum:      FormatKopecks(b.sum),
		})
	}
	return out
}
