package cache

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Partition returns the key prefix owning every entry of one session. The
// token itself never appears in a key.
func Partition(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return "s:" + hex.EncodeToString(sum[:12]) + ":"
}

// KeyBuilder helps build consistent cache keys inside a partition.
type KeyBuilder struct {
	partition string
	parts     []string
}

// NewKeyBuilder starts a key in the partition of token.
func NewKeyBuilder(token string) *KeyBuilder {
	return &KeyBuilder{partition: Partition(token), parts: make([]string, 0, 4)}
}

// Add appends a key component.
func (b *KeyBuilder) Add(part string) *KeyBuilder {
	b.parts = append(b.parts, strings.ReplaceAll(part, ":", "_"))
	return b
}

// Build generates the final cache key.
func (b *KeyBuilder) Build() string {
	return b.partition + strings.Join(b.parts, ":")
}
