package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "prefix:<sha256 of the JSON encoding of parts>".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// ConvertKeyOpts are the options that change the bytes of a conversion.
type ConvertKeyOpts struct {
	Format   string `json:"format"`
	Encoding string `json:"encoding"`
	Indent   bool   `json:"indent"`
}

// Keyer maps a conversion request to a cache key.
type Keyer interface {
	// ConvertKey returns the key of the GXL document produced from input
	// whose content hash is inputHash.
	ConvertKey(inputHash string, opts ConvertKeyOpts) string
}

// DefaultKeyer generates unprefixed keys.
type DefaultKeyer struct{}

func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ConvertKey returns "gxl:<sha256(inputHash, opts)>".
func (DefaultKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return hashKey("gxl", inputHash, opts)
}

// ScopedKeyer prefixes the keys of another Keyer. Scoping by converter
// version keeps a new release from serving documents an older one wrote:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return k.prefix + k.inner.ConvertKey(inputHash, opts)
}
