package headers

import (
	"sort"
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

// Headers maps header names, stored exactly as received, to their values. A repeated
// name overwrites the previous value. Lookups come in two flavours: Get is exact, Value
// and Has ignore the case.
type Headers map[string]string

func New() Headers {
	return make(Headers)
}

// NewFromMap copies the passed map.
func NewFromMap(m map[string]string) Headers {
	h := make(Headers, len(m))
	for key, value := range m {
		h[key] = value
	}

	return h
}

// Set stores the value, overwriting a previous value of exactly the same name.
func (h Headers) Set(key, value string) Headers {
	h[key] = value
	return h
}

// Get returns the value stored under exactly the same name.
func (h Headers) Get(key string) (string, bool) {
	value, found := h[key]
	return value, found
}

// Lookup returns a value whose name matches the key case-insensitively. An exact match
// is preferred; otherwise names are tried in sorted order, so the result is stable even if
// the same header was sent in different cases.
func (h Headers) Lookup(key string) (string, bool) {
	if value, found := h[key]; found {
		return value, true
	}

	for _, name := range h.Keys() {
		if strcomp.EqualFold(name, key) {
			return h[name], true
		}
	}

	return "", false
}

// Value returns the case-insensitively matched value or an empty string.
func (h Headers) Value(key string) string {
	return h.ValueOr(key, "")
}

func (h Headers) ValueOr(key, or string) string {
	value, found := h.Lookup(key)
	if !found {
		return or
	}

	return value
}

func (h Headers) Has(key string) bool {
	_, found := h.Lookup(key)
	return found
}

// Tokens splits the case-insensitively matched value by commas, trimming each token.
// Empty tokens are skipped.
func (h Headers) Tokens(key string) []string {
	value, found := h.Lookup(key)
	if !found {
		return nil
	}

	var toks []string

	for len(value) > 0 {
		var token string
		comma := strings.IndexByte(value, ',')
		if comma == -1 {
			token, value = value, ""
		} else {
			token, value = value[:comma], value[comma+1:]
		}

		if token = strings.TrimSpace(token); len(token) > 0 {
			toks = append(toks, token)
		}
	}

	return toks
}

// Keys returns the header names in sorted order.
func (h Headers) Keys() []string {
	keys := make([]string, 0, len(h))
	for key := range h {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func (h Headers) Len() int {
	return len(h)
}

func (h Headers) Clone() Headers {
	return NewFromMap(h)
}
