package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ListExtractor pulls a list out of a decoded JSON document. It reports
// false when the shape does not match.
type ListExtractor func(doc json.RawMessage) ([]json.RawMessage, bool)

// FromKey extracts the list stored under key of a JSON object.
func FromKey(key string) ListExtractor {
	return func(doc json.RawMessage) ([]json.RawMessage, bool) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(doc, &obj); err != nil {
			return nil, false
		}
		raw, ok := obj[key]
		if !ok {
			return nil, false
		}
		return BareList(raw)
	}
}

// BareList treats the whole document as the list.
func BareList(doc json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, false
	}
	return items, true
}

// ExtractList tries each candidate key in order and falls back to reading the
// body as a bare list. ok is false when no strategy matched.
func ExtractList(body []byte, keys ...string) (items []json.RawMessage, ok bool) {
	strategies := make([]ListExtractor, 0, len(keys)+1)
	for _, k := range keys {
		strategies = append(strategies, FromKey(k))
	}
	strategies = append(strategies, BareList)

	for _, extract := range strategies {
		if items, ok := extract(body); ok {
			return items, true
		}
	}
	return nil, false
}

// DecodeJSON unmarshals a successful answer into v, reporting failures as
// BadResponse for system/op.
func DecodeJSON(system System, op string, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return BadResponse(system, op, body, err)
	}
	return nil
}

// ExternalID is an upstream identifier that some APIs send as a number and
// others as a string.
type ExternalID string

func (id *ExternalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ExternalID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("external id must be a string or a number")
	}
	if i, err := n.Int64(); err == nil {
		*id = ExternalID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ExternalID(n.String())
	return nil
}

func (id ExternalID) String() string {
	return string(id)
}

// PageFetcher returns up to limit items starting at offset.
type PageFetcher[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// Paginate walks pages of pageSize until one comes back short. It never
// collects more than ceiling items, so an upstream that always answers with
// a full page still terminates.
func Paginate[T any](ctx context.Context, pageSize, ceiling int, fetch PageFetcher[T]) ([]T, error) {
	if pageSize <= 0 {
		return nil, errors.New("page size must be positive")
	}
	var all []T
	for offset := 0; offset < ceiling; offset += pageSize {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		page, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return all, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			break
		}
	}
	if len(all) > ceiling {
		all = all[:ceiling]
	}
	return all, nil
}
