// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Language is a BCP 47 language code identifying one menu locale
// (e.g. "en", "ru", "ka").
type Language string

// Columns names the language of each slash-separated segment of a menu
// source line, in source order.
type Columns [3]Language

// Index returns the segment position holding lang, or -1 when lang is not
// one of the columns.
func (c Columns) Index(lang Language) int {
	for i, l := range c {
		if l == lang {
			return i
		}
	}
	return -1
}

// TrilingualLabel holds the same concept in three languages, ordered as the
// source columns.
type TrilingualLabel [3]string

// In returns the label text for lang. It returns "" when lang is not one of
// the columns.
func (l TrilingualLabel) In(cols Columns, lang Language) string {
	i := cols.Index(lang)
	if i < 0 {
		return ""
	}
	return l[i]
}

// MenuItem is one parsed item line. Desc is always nil for items parsed from
// the kitchen menu text.
type MenuItem struct {
	Category TrilingualLabel
	Name     TrilingualLabel
	Price    string
	Desc     *string
}

// Price is a menu price persisted as text (digits and an optional period).
// Older documents sometimes hold a JSON number; it is read as its textual
// form and always written back as a string.
type Price string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (p *Price) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price must be a string or number, got %s", data)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("invalid price %s: %w", data, err)
	}
	*p = Price(n.String())
	return nil
}

// LocaleItem is a menu item as stored in a single-language document.
// Keys other than the four menu fields (the site reads "type" and
// "popular", for example) are kept in Extra and written back after them.
type LocaleItem struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Price    Price   `json:"price"`
	Desc     *string `json:"desc"`

	Extra []ItemField `json:"-"`
}

// ItemField is one extra key of a locale item with its raw JSON value.
type ItemField struct {
	Key   string
	Value json.RawMessage
}

// UnmarshalJSON decodes the menu fields and collects every other key, in
// document order, into Extra.
func (it *LocaleItem) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("menu item must be a JSON object, got %s", data)
	}

	*it = LocaleItem{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("item field %q: %w", key, err)
		}

		var target any
		switch key {
		case "category":
			target = &it.Category
		case "name":
			target = &it.Name
		case "price":
			target = &it.Price
		case "desc":
			target = &it.Desc
		default:
			it.Extra = append(it.Extra, ItemField{Key: key, Value: raw})
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("item field %q: %w", key, err)
		}
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON writes category, name, price and desc followed by Extra.
func (it LocaleItem) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	write := func(key string, v any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(key); err != nil {
			return err
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		if raw, ok := v.(json.RawMessage); ok {
			buf.Write(raw)
			return nil
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
		buf.Truncate(buf.Len() - 1)
		return nil
	}

	fields := []struct {
		key string
		v   any
	}{
		{"category", it.Category},
		{"name", it.Name},
		{"price", string(it.Price)},
		{"desc", it.Desc},
	}
	for _, f := range fields {
		if err := write(f.key, f.v); err != nil {
			return nil, err
		}
	}
	for _, f := range it.Extra {
		if _, known := knownItemKeys[f.Key]; known {
			continue
		}
		if err := write(f.Key, f.Value); err != nil {
			return nil, fmt.Errorf("item field %q: %w", f.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var knownItemKeys = map[string]struct{}{
	"category": {}, "name": {}, "price": {}, "desc": {},
}
