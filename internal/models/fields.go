package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// decodePartial decodes a partial-update body into dst after checking every
// top-level key against allowed. Keys are checked in sorted order so the same
// body always reports the same offending field.
func decodePartial(body []byte, allowed map[string]struct{}, dst interface{}) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("%w: body must be a JSON object", ErrValidation)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := allowed[k]; !ok {
			return fmt.Errorf("%w: %s", ErrInvalidField, k)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func fieldSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
