package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errUnexpectedToken = errors.New("unexpected JSON token")

// Quote renders s in single quotes, switching to double quotes when s
// contains a single quote but no double quote.
func Quote(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var sb strings.Builder

	sb.WriteRune(q)

	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == q:
			sb.WriteRune('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		default:
			sb.WriteRune(r)
		}
	}

	sb.WriteRune(q)

	return sb.String()
}

// FormatList renders items as a bracketed list of quoted strings, e.g.
// ['RSN', 'HT'].
func FormatList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = Quote(item)
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}

// FormatDecimal renders v with at least one fractional digit (100 -> 100.0).
func FormatDecimal(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}

// DisplayJSON renders a JSON value in the same textual form as FormatList:
// strings quoted, true/false/null as True/False/None, object keys in
// document order.
func DisplayJSON(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var sb strings.Builder
	if err := displayValue(dec, &sb); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func displayValue(dec *json.Decoder, sb *strings.Builder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		return displayContainer(dec, sb, v)
	case string:
		sb.WriteString(Quote(v))
	case json.Number:
		sb.WriteString(displayNumber(v))
	case bool:
		if v {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case nil:
		sb.WriteString("None")
	default:
		return fmt.Errorf("%w: %v", errUnexpectedToken, tok)
	}

	return nil
}

func displayContainer(dec *json.Decoder, sb *strings.Builder, open json.Delim) error {
	closing := byte(']')
	if open == '{' {
		closing = '}'
	}

	sb.WriteByte(byte(open))

	for i := 0; dec.More(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}

		if open == '{' {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}

			key, _ := keyTok.(string)
			sb.WriteString(Quote(key))
			sb.WriteString(": ")
		}

		if err := displayValue(dec, sb); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	sb.WriteByte(closing)

	return nil
}

// displayNumber keeps integers as written and normalizes anything with a
// fraction or exponent to decimal form.
func displayNumber(n json.Number) string {
	text := n.String()
	if !strings.ContainsAny(text, ".eE") {
		return text
	}

	v, err := n.Float64()
	if err != nil {
		return text
	}

	return FormatDecimal(v)
}
