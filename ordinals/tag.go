package ordinals

// Tag identifies a data field in an inscription envelope. Unrecognized odd tags
// are ignored; unrecognized even tags mark the record as a cenotaph candidate
// (UnrecognizedEvenField).
type Tag uint8

var (
	TagBody    = Tag(0)
	TagPointer = Tag(2)

	TagContentType     = Tag(1)
	TagParent          = Tag(3)
	TagMetadata        = Tag(5)
	TagMetaprotocol    = Tag(7)
	TagContentEncoding = Tag(9)
	TagDelegate        = Tag(11)
	// TagRune is reserved for rune etching metadata. Rune issuance is out of
	// scope for this engine; the tag is recognized only so that its value is
	// kept in InscriptionRecord.Rune. Being odd, it would not trip
	// UnrecognizedEvenField either way.
	TagRune = Tag(13)

	// TagNop is unrecognized by design; used in tests to exercise the cenotaph path.
	TagNop = Tag(255)
)

var allTags = map[Tag]struct{}{
	TagPointer: {},

	TagContentType:     {},
	TagParent:          {},
	TagMetadata:        {},
	TagMetaprotocol:    {},
	TagContentEncoding: {},
	TagDelegate:        {},
	TagRune:            {},
}

func (t Tag) IsValid() bool {
	_, ok := allTags[t]
	return ok
}

var chunkedTags = map[Tag]struct{}{
	TagMetadata: {},
}

// IsChunked reports whether repeated pushes of this tag are concatenated
// (metadata) rather than keeping only the first occurrence.
func (t Tag) IsChunked() bool {
	_, ok := chunkedTags[t]
	return ok
}

func (t Tag) Bytes() []byte {
	if t == TagBody {
		return []byte{}
	}
	return []byte{byte(t)}
}
