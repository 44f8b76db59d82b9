// Package canonical turns custody records into deterministic bytes and fingerprints them.
//
// Canonical form is RFC 8785 (JSON Canonicalization Scheme): object keys are sorted at
// every level, array order is kept, numbers and strings are normalized. A fingerprint is
// the lowercase hex SHA-256 of those bytes, so any party holding a payload can verify it
// against a recorded fingerprint without access to this service.
package canonical

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/Allen-Brian/AGRICHAIN/internal/adapter"
	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
)

// maxDepth bounds nesting so pathological inputs fail instead of exhausting the stack
const maxDepth = 256

// FingerprintLength is the length of a hex encoded fingerprint
const FingerprintLength = sha256.Size * 2

// Canonicalizer produces canonical bytes and fingerprints
type Canonicalizer struct {
	jcs adapter.JCS
}

// New creates a canonicalizer backed by the given JCS transformer
func New(jcs adapter.JCS) *Canonicalizer {
	return &Canonicalizer{jcs: jcs}
}

var defaultCanonicalizer = New(adapter.NewJCS())

// Canonicalize serializes v into canonical JSON bytes.
// Cyclic values, NaN/Inf floats and non-JSON kinds fail with domain.ErrUnserializableInput.
func (c *Canonicalizer) Canonicalize(v any) ([]byte, error) {
	if err := checkSerializable(reflect.ValueOf(v), map[visitKey]struct{}{}, 0); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnserializableInput, err)
	}

	return c.transform(raw)
}

// CanonicalizeJSON canonicalizes JSON text, e.g. a payload read back from storage
func (c *Canonicalizer) CanonicalizeJSON(raw []byte) ([]byte, error) {
	return c.transform(raw)
}

func (c *Canonicalizer) transform(raw []byte) ([]byte, error) {
	out, err := c.jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnserializableInput, err)
	}
	return out, nil
}

// Fingerprint canonicalizes v and returns its fingerprint along with the canonical bytes
func (c *Canonicalizer) Fingerprint(v any) (string, []byte, error) {
	canonicalBytes, err := c.Canonicalize(v)
	if err != nil {
		return "", nil, err
	}
	return Hash(canonicalBytes), canonicalBytes, nil
}

// Verify reports whether payload canonicalizes to the claimed fingerprint
func (c *Canonicalizer) Verify(payload any, claimedHash string) bool {
	fingerprint, _, err := c.Fingerprint(payload)
	if err != nil {
		return false
	}
	return equalHex(fingerprint, claimedHash)
}

// VerifyJSON reports whether JSON text canonicalizes to the claimed fingerprint
func (c *Canonicalizer) VerifyJSON(raw []byte, claimedHash string) bool {
	canonicalBytes, err := c.CanonicalizeJSON(raw)
	if err != nil {
		return false
	}
	return equalHex(Hash(canonicalBytes), claimedHash)
}

// Hash returns the lowercase hex SHA-256 digest of canonical bytes
func Hash(canonicalBytes []byte) string {
	sum := sha256.Sum256(canonicalBytes)
	return hex.EncodeToString(sum[:])
}

// Canonicalize serializes v with the default canonicalizer
func Canonicalize(v any) ([]byte, error) {
	return defaultCanonicalizer.Canonicalize(v)
}

// CanonicalizeJSON canonicalizes JSON text with the default canonicalizer
func CanonicalizeJSON(raw []byte) ([]byte, error) {
	return defaultCanonicalizer.CanonicalizeJSON(raw)
}

// Fingerprint fingerprints v with the default canonicalizer
func Fingerprint(v any) (string, []byte, error) {
	return defaultCanonicalizer.Fingerprint(v)
}

// Verify checks payload against claimedHash with the default canonicalizer
func Verify(payload any, claimedHash string) bool {
	return defaultCanonicalizer.Verify(payload, claimedHash)
}

// VerifyJSON checks JSON text against claimedHash with the default canonicalizer
func VerifyJSON(raw []byte, claimedHash string) bool {
	return defaultCanonicalizer.VerifyJSON(raw, claimedHash)
}

func equalHex(computed, claimed string) bool {
	claimed = strings.ToLower(strings.TrimSpace(claimed))
	if len(claimed) != FingerprintLength {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(claimed)) == 1
}

type visitKey struct {
	ptr uintptr
	typ reflect.Type
	len int
}

// checkSerializable walks v and rejects reference cycles and values JSON cannot represent.
// Shared, non-cyclic references are allowed.
func checkSerializable(v reflect.Value, visiting map[visitKey]struct{}, depth int) error {
	if !v.IsValid() {
		return nil
	}
	if depth > maxDepth {
		return fmt.Errorf("%w: nesting deeper than %d", domain.ErrUnserializableInput, maxDepth)
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return checkSerializable(v.Elem(), visiting, depth+1)

	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return nil
		}
		key := visitKey{ptr: v.Pointer(), typ: v.Type()}
		if v.Kind() == reflect.Slice {
			key.len = v.Len()
		}
		if _, seen := visiting[key]; seen {
			return fmt.Errorf("%w: cyclic %s", domain.ErrUnserializableInput, v.Type())
		}
		visiting[key] = struct{}{}
		defer delete(visiting, key)

		switch v.Kind() {
		case reflect.Pointer:
			return checkSerializable(v.Elem(), visiting, depth+1)
		case reflect.Map:
			iter := v.MapRange()
			for iter.Next() {
				if err := checkSerializable(iter.Value(), visiting, depth+1); err != nil {
					return err
				}
			}
		default:
			if v.Type().Elem().Kind() == reflect.Uint8 {
				// []byte encodes as a base64 string
				return nil
			}
			for i := 0; i < v.Len(); i++ {
				if err := checkSerializable(v.Index(i), visiting, depth+1); err != nil {
					return err
				}
			}
		}

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := checkSerializable(v.Index(i), visiting, depth+1); err != nil {
				return err
			}
		}

	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := checkSerializable(v.Field(i), visiting, depth+1); err != nil {
				return err
			}
		}

	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite number", domain.ErrUnserializableInput)
		}

	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return fmt.Errorf("%w: unsupported kind %s", domain.ErrUnserializableInput, v.Kind())
	}

	return nil
}
