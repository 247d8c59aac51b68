package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for persisted generation artifacts
const (
	manifestKey     = "genmf"
	fingerprintPfx  = "genfp"
	jobRowPrefix    = "genjob"
	vectorRowPrefix = "genvec"
	generationIDSeq = "genseq"
)

// makeFingerprintKey generates the fingerprint key for a generation.
func makeFingerprintKey(gen uint64) []byte {
	return []byte(fmt.Sprintf("%s:%d", fingerprintPfx, gen))
}

// makeRowKey generates a composite key for a row-aligned artifact.
// Format: prefix:generation:row, with BigEndian numbers so lexicographic
// iteration visits rows in order.
func makeRowKey(prefix string, gen uint64, row int) []byte {
	prefixBytes := []byte(prefix + ":")
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], gen)
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(row))
	return buf
}
