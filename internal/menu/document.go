// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/drunkowl/site-tools/pkg/types"
)

// ErrMalformedDocument is returned when a locale document is not JSON or
// lacks a menu object with categories and items arrays.
var ErrMalformedDocument = errors.New("malformed menu document")

const indent = "    "

// Document is one locale's menu JSON file. Categories and Items mirror
// menu.categories and menu.items; every other field of the file is kept
// verbatim and in its original position.
type Document struct {
	Categories []string
	Items      []types.LocaleItem

	root object
	menu object
}

// LoadDocument reads and decodes the document at path.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading menu document: %w", err)
	}
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// DecodeDocument decodes a locale document.
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc.root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	menuRaw, ok := doc.root.get("menu")
	if !ok {
		return nil, fmt.Errorf("%w: missing \"menu\"", ErrMalformedDocument)
	}
	if err := json.Unmarshal(menuRaw, &doc.menu); err != nil {
		return nil, fmt.Errorf("%w: menu: %v", ErrMalformedDocument, err)
	}

	catRaw, err := doc.menu.array("categories")
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(catRaw, &doc.Categories); err != nil {
		return nil, fmt.Errorf("%w: menu.categories: %v", ErrMalformedDocument, err)
	}
	itemsRaw, err := doc.menu.array("items")
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsRaw, &doc.Items); err != nil {
		return nil, fmt.Errorf("%w: menu.items: %v", ErrMalformedDocument, err)
	}
	return &doc, nil
}

// Encode renders the document as indented JSON with non-ASCII text left
// unescaped.
func (d *Document) Encode() ([]byte, error) {
	cats := d.Categories
	if cats == nil {
		cats = []string{}
	}
	items := d.Items
	if items == nil {
		items = []types.LocaleItem{}
	}

	catRaw, err := marshalRaw(cats)
	if err != nil {
		return nil, fmt.Errorf("encoding categories: %w", err)
	}
	itemsRaw, err := marshalRaw(items)
	if err != nil {
		return nil, fmt.Errorf("encoding items: %w", err)
	}
	d.menu.set("categories", catRaw)
	d.menu.set("items", itemsRaw)

	menuRaw, err := marshalRaw(d.menu)
	if err != nil {
		return nil, fmt.Errorf("encoding menu: %w", err)
	}
	d.root.set("menu", menuRaw)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(d.root); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDocument replaces the file at path with the encoded document. The
// content goes to a temporary file in the same directory first and is
// renamed over path, so readers never see a partial document.
func WriteDocument(path string, d *Document) error {
	data, err := d.Encode()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".menu-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := io.Copy(tmpFile, bytes.NewReader(data))
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func marshalRaw(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// object is a JSON object that keeps its keys in document order.
type object struct {
	keys   []string
	values map[string]json.RawMessage
}

func (o *object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected a JSON object")
	}

	o.keys = nil
	o.values = make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}
		if _, dup := o.values[key]; !dup {
			o.keys = append(o.keys, key)
		}
		o.values[key] = raw
	}
	_, err = dec.Token()
	return err
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalRaw(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(o.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *object) get(key string) (json.RawMessage, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *object) set(key string, v json.RawMessage) {
	if o.values == nil {
		o.values = make(map[string]json.RawMessage)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// array returns the raw value of key, which must be a JSON array.
func (o *object) array(key string) (json.RawMessage, error) {
	raw, ok := o.get(key)
	if !ok {
		return nil, fmt.Errorf("%w: missing \"menu.%s\"", ErrMalformedDocument, key)
	}
	if t := bytes.TrimSpace(raw); len(t) == 0 || t[0] != '[' {
		return nil, fmt.Errorf("%w: \"menu.%s\" is not an array", ErrMalformedDocument, key)
	}
	return raw, nil
}
