package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/starford/petdesk/internal/models"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Pet returns the digest of the pet's canonical JSON encoding. Two pets with
// equal fields always share a checksum.
func Pet(p models.Pet) string {
	data, _ := json.Marshal(p)
	return Sum(data)
}
