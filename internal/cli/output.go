package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"receipt_check/internal/batch"
	"receipt_check/internal/receipt"

	"gopkg.in/yaml.v3"
)

type resultWriter interface {
	write(batch.Result) error
	flush() error
}

func newWriter(format string, out io.Writer) (resultWriter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return &textWriter{out: out}, nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		return &jsonWriter{enc: enc}, nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		return &yamlWriter{enc: enc}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

type record struct {
	Line           int              `json:"line" yaml:"line"`
	FN             int64            `json:"fn,omitempty" yaml:"fn,omitempty"`
	I              int64            `json:"i,omitempty" yaml:"i,omitempty"`
	FP             int64            `json:"fp,omitempty" yaml:"fp,omitempty"`
	Skipped        string           `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Error          *recordError     `json:"error,omitempty" yaml:"error,omitempty"`
	ReceiptMissing bool             `json:"receipt_missing,omitempty" yaml:"receipt_missing,omitempty"`
	Receipt        *receipt.Summary `json:"receipt,omitempty" yaml:"receipt,omitempty"`
}

type recordError struct {
	Code    int    `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

func newRecord(res batch.Result) record {
	rec := record{Line: res.Line.Number}
	if res.Line.Err != nil {
		rec.Skipped = res.Line.Err.Error()
		return rec
	}

	rec.FN = res.Line.Params.DeviceSerial
	rec.I = res.Line.Params.DocumentNumber
	rec.FP = res.Line.Params.FiscalSignature

	if res.Outcome.Err != nil {
		rec.Error = &recordError{Code: res.Outcome.Err.Code, Message: res.Outcome.Err.Message}
		return rec
	}

	summary, ok := receipt.Normalize(*res.Outcome.Envelope)
	if !ok {
		rec.ReceiptMissing = true
		return rec
	}
	rec.Receipt = &summary
	return rec
}

type jsonWriter struct {
	enc *json.Encoder
}

func (w *jsonWriter) write(res batch.Result) error {
	return w.enc.Encode(newRecord(res))
}

func (w *jsonWriter) flush() error {
	return nil
}

type yamlWriter struct {
	enc *yaml.Encoder
}

func (w *yamlWriter) write(res batch.Result) error {
	return w.enc.Encode(newRecord(res))
}

func (w *yamlWriter) flush() error {
	return w.enc.Close()
}

type textWriter struct {
	out     io.Writer
	written int
}

func (w *textWriter) write(res batch.Result) error {
	var b strings.Builder
	if w.written > 0 {
		b.WriteString("\n")
	}
	w.written++

	rec := newRecord(res)
	if rec.Skipped != "" {
		fmt.Fprintf(&b, "Строка %d пропущена: %s\n- %s\n", rec.Line, rec.Skipped, res.Line.Text)
		_, err := io.WriteString(w.out, b.String())
		return err
	}

	fmt.Fprintf(&b, "Чек (строка %d, fn=%d, i=%d, fp=%d):\n", rec.Line, rec.FN, rec.I, rec.FP)
	switch {
	case rec.Error != nil:
		fmt.Fprintf(&b, "ERROR! %d: %s\n", rec.Error.Code, rec.Error.Message)
	case rec.ReceiptMissing:
		fmt.Fprintln(&b, receipt.MissingReceiptMessage)
	default:
		writeSummary(&b, rec.Receipt)
	}

	_, err := io.WriteString(w.out, b.String())
	return err
}

func (w *textWriter) flush() error {
	return nil
}

func writeSummary(b *strings.Builder, s *receipt.Summary) {
	operator := "-"
	if s.Operator != nil {
		operator = *s.Operator
	}

	fmt.Fprintf(b, "НДС: %s\n", s.VAT)
	fmt.Fprintf(b, "Оператор: %s\n", operator)
	fmt.Fprintf(b, "ИТОГ: %s\n", s.Total)
	fmt.Fprintf(b, "Дата: %s\n", formatValue(s.DateTime))

	if s.ItemsMissing {
		fmt.Fprintf(b, "Покупки: %s\n", receipt.MissingItemsMessage)
		return
	}

	fmt.Fprintln(b, "Покупки:")
	for i, item := range s.Items {
		fmt.Fprintf(b, "%d) ", i+1)
		if item.Code != "" {
			fmt.Fprintf(b, "[%s] ", item.Code)
		}
		fmt.Fprintf(b, "%s: %s x %s = %s\n", item.Name, strconv.FormatFloat(item.Quantity, 'f', -1, 64), item.Price, item.Sum)
	}
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "-"
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}
