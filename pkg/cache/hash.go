package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keySpace tags every derived key, so entries written by this tool are
// recognizable in a shared backend like Redis.
const keySpace = "asciigram"

// hashKey builds a cache key of the form asciigram:<kind>:<digest>,
// where kind names the cached artifact (source, render) and the digest
// is the SHA-256 of the JSON-encoded parts. The full 256-bit digest
// keeps distinct sources and option sets from colliding.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return keySpace + ":" + kind + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 digest of data. The pipeline uses it to
// fingerprint raw sources and serialized graphs, so two diagrams that
// differ only in whitespace still hash apart at the source level while
// sharing a graph-level digest.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
