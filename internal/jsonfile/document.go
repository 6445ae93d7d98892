package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

var (
	errNullQuantity   = errors.New("null is not a quantity")
	errNestedQuantity = errors.New("objects and arrays are not quantities")
	errEmptyItem      = errors.New("item identifier is empty")
)

// decodeDocument decodes a JSON object into entries in key order.
//
// The whole document is checked for syntax first, so a syntax error returns
// nil entries. Repeated keys are merged before any value is coerced: a key
// keeps its first position and takes its last value. A value that cannot be
// coerced stops decoding and returns the entries decoded so far (never nil)
// with an error wrapping ErrMalformedData.
func decodeDocument(data []byte) ([]types.Entry, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: invalid JSON syntax", types.ErrMalformedData)
	}

	fields, err := readObject(data)
	if err != nil {
		return nil, err
	}

	entries := []types.Entry{}
	for _, f := range fields {
		if f.item == "" {
			return entries, fmt.Errorf("%w: %v", types.ErrMalformedData, errEmptyItem)
		}
		qty, err := coerceQuantity(f.raw)
		if err != nil {
			return entries, fmt.Errorf("%w: item %q: %v", types.ErrMalformedData, f.item, err)
		}
		entries = append(entries, types.Entry{Item: f.item, Quantity: qty})
	}
	return entries, nil
}

// field is one member of a decoded object, before coercion.
type field struct {
	item string
	raw  json.RawMessage
}

// readObject returns the members of the top-level object in first-seen key
// order, with each repeated key holding its last raw value.
func readObject(data []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedData, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, types.ErrNotObject
	}

	var fields []field
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrMalformedData, err)
		}
		item, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: item %q: %v", types.ErrMalformedData, item, err)
		}

		if i, ok := index[item]; ok {
			fields[i].raw = raw
			continue
		}
		index[item] = len(fields)
		fields = append(fields, field{item: item, raw: raw})
	}
	return fields, nil
}

// coerceQuantity converts a raw JSON value to an int. Integers pass through,
// floats are truncated toward zero, booleans become 1 or 0, and strings are
// accepted when they hold a base-10 integer, optionally surrounded by
// whitespace and with single underscores between digits.
func coerceQuantity(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, errNullQuantity
	}

	switch raw[0] {
	case 'n':
		return 0, errNullQuantity
	case 't':
		return 1, nil
	case 'f':
		return 0, nil
	case '{', '[':
		return 0, errNestedQuantity
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		digits, ok := stripDigitSeparators(strings.TrimSpace(s))
		if !ok {
			return 0, fmt.Errorf("string %q is not an integer", s)
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return 0, fmt.Errorf("string %q is not an integer", s)
		}
		return n, nil
	}

	text := string(raw)
	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("number %s is out of range", text)
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("number %s is out of range", text)
	}
	return int(f), nil
}

// stripDigitSeparators removes underscores that sit between two digits, as in
// "1_000". Any other underscore makes the text invalid.
func stripDigitSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

// encodeDocument renders entries as an indented JSON object in entry order.
// Item names are written as UTF-8 without HTML escaping.
func encodeDocument(entries []types.Entry) ([]byte, error) {
	var buf bytes.Buffer
	if len(entries) == 0 {
		buf.WriteString("{}\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("{\n")
	for i, e := range entries {
		key, err := encodeKey(e.Item)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding item %q: %v", types.ErrIOFailure, e.Item, err)
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.WriteString(strconv.Itoa(e.Quantity))
		if i < len(entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func encodeKey(item string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(item); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
