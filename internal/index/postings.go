package index

import (
	"encoding/binary"

	"github.com/patseek/patseek/internal/constants"
	pserrors "github.com/patseek/patseek/internal/errors"
)

// Posting is one (doc_id, tf) pair in a per-field postings list.
//
// Both values are stored as unsigned 32-bit little-endian integers. The
// encoding is byte-compatible with a signed reading for any corpus under
// 2^31 documents.
type Posting struct {
	DocID uint32
	TF    uint32
}

// appendPosting encodes p onto buf in the fixed 8-byte wire form.
func appendPosting(buf []byte, p Posting) []byte {
	var rec [constants.PostingSize]byte
	binary.LittleEndian.PutUint32(rec[0:4], p.DocID)
	binary.LittleEndian.PutUint32(rec[4:8], p.TF)
	return append(buf, rec[:]...)
}

// decodePostings decodes a tightly packed run of count postings starting at
// the given file offset. The offset is only used for error reporting.
func decodePostings(data []byte, count int, offset int64) ([]Posting, error) {
	want := count * constants.PostingSize
	if len(data) < want {
		return nil, pserrors.NewCorruptIndexError(offset, want, len(data))
	}

	out := make([]Posting, count)
	for i := 0; i < count; i++ {
		rec := data[i*constants.PostingSize:]
		out[i] = Posting{
			DocID: binary.LittleEndian.Uint32(rec[0:4]),
			TF:    binary.LittleEndian.Uint32(rec[4:8]),
		}
	}
	return out, nil
}
