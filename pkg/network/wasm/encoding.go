// pkg/network/wasm/encoding.go
package wasm

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gowebpki/jcs"
)

// CanonicalJSON returns the RFC 8785 canonical encoding of v. Object keys are
// sorted and no HTML escaping is applied, so equal values always encode to the
// same bytes. Integers that float64 cannot hold exactly are written digit for
// digit instead of being rounded.
func CanonicalJSON(v any) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}

	exact := &exactIntegers{nonce: uuid.NewString(), digits: map[string]string{}}
	if doc = exact.protect(doc); len(exact.digits) > 0 {
		if raw, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal message: %w", err)
		}
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize message: %w", err)
	}

	for token, digits := range exact.digits {
		canonical = bytes.Replace(canonical, []byte(`"`+token+`"`), []byte(digits), 1)
	}
	return canonical, nil
}

// maxExactInteger is the largest magnitude float64 represents without gaps.
const maxExactInteger = 1 << 53

// exactIntegers swaps integers beyond maxExactInteger for placeholder strings
// while jcs runs, and remembers their digits.
type exactIntegers struct {
	nonce  string
	digits map[string]string
}

func (e *exactIntegers) protect(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = e.protect(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = e.protect(item)
		}
		return val
	case json.Number:
		s := val.String()
		if strings.ContainsAny(s, ".eE") {
			return val
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= -maxExactInteger && n <= maxExactInteger {
			return val
		}
		token := fmt.Sprintf("int-%s-%d", e.nonce, len(e.digits))
		e.digits[token] = s
		return token
	default:
		return v
	}
}

// EncodeBinary serializes v to canonical JSON and encodes it as base64 text.
// Contracts receive nested messages in this form and decode them on their own.
func EncodeBinary(v any) (string, error) {
	canonical, err := CanonicalJSON(v)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(canonical), nil
}

// DecodeBinary reverses EncodeBinary into out. Numbers decode as json.Number
// when out is an interface value.
func DecodeBinary(s string, out any) error {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("failed to decode base64: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}

	return nil
}
