package ordinals

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/txscript"
	"github.com/samber/lo"

	"github.com/satflow/ordinals-engine/core/types"
)

// Envelope is the raw container for an inscription record within a witness,
// carrying the structural curse-relevant flags the tracker and builder need.
// This is Envelope<InscriptionRecord> from the spec's data model, collapsed
// into one concrete struct since Go's generics buy nothing when there is only
// ever one payload type in play.
type Envelope struct {
	Record InscriptionRecord

	// InputIndex is the zero-based index of the input the envelope was found in.
	InputIndex uint32
	// Offset is the zero-based index of this envelope within its input.
	Offset int
	// PushNum is true if the envelope's payload uses small-integer push opcodes
	// (OP_1..OP_16, OP_1NEGATE) where a data push was expected.
	PushNum bool
	// Stutter is true if the envelope's OP_FALSE immediately follows another
	// OP_FALSE that did not open a valid envelope.
	Stutter bool
}

var protocolId = []byte("ord")

// ParseEnvelopesFromTx extracts every ord envelope from a transaction's input
// witnesses, in ascending (input, offset) order.
func ParseEnvelopesFromTx(tx *types.Transaction) []*Envelope {
	envelopes := make([]*Envelope, 0)
	for i, txIn := range tx.TxIn {
		tapScript, ok := extractTapScript(txIn.Witness)
		if !ok {
			continue
		}
		envelopes = append(envelopes, envelopesFromTapScript(tapScript, i)...)
	}
	return envelopes
}

func envelopesFromTapScript(tokenizer txscript.ScriptTokenizer, inputIndex int) []*Envelope {
	envelopes := make([]*Envelope, 0)

	var stuttered bool
	for tokenizer.Next() {
		if tokenizer.Err() != nil {
			break
		}
		if tokenizer.Opcode() == txscript.OP_FALSE {
			envelope, stutter := envelopeFromTokenizer(tokenizer, inputIndex, len(envelopes), stuttered)
			if envelope != nil {
				envelopes = append(envelopes, envelope)
			} else {
				stuttered = stutter
			}
		}
	}
	return envelopes
}

func envelopeFromTokenizer(tokenizer txscript.ScriptTokenizer, inputIndex int, offset int, stuttered bool) (*Envelope, bool) {
	tokenizer.Next()
	if tokenizer.Opcode() != txscript.OP_IF {
		return nil, tokenizer.Opcode() == txscript.OP_FALSE
	}

	tokenizer.Next()
	if !bytes.Equal(tokenizer.Data(), protocolId) {
		return nil, tokenizer.Opcode() == txscript.OP_FALSE
	}

	var pushNum bool
	payload := make([][]byte, 0)
	for tokenizer.Next() {
		if tokenizer.Err() != nil {
			return nil, false
		}
		opCode := tokenizer.Opcode()
		if opCode == txscript.OP_ENDIF {
			break
		}
		switch opCode {
		case txscript.OP_1NEGATE:
			pushNum = true
			payload = append(payload, []byte{0x81})
		case txscript.OP_1, txscript.OP_2, txscript.OP_3, txscript.OP_4, txscript.OP_5,
			txscript.OP_6, txscript.OP_7, txscript.OP_8, txscript.OP_9, txscript.OP_10,
			txscript.OP_11, txscript.OP_12, txscript.OP_13, txscript.OP_14, txscript.OP_15, txscript.OP_16:
			pushNum = true
			payload = append(payload, []byte{byte(opCode) - byte(txscript.OP_1) + 1})
		case txscript.OP_0:
			// OP_0 is accepted as an empty data push, same as ord's implementation.
			payload = append(payload, []byte{})
		default:
			data := tokenizer.Data()
			if data == nil {
				return nil, false
			}
			payload = append(payload, data)
		}
	}
	if tokenizer.Done() && tokenizer.Opcode() != txscript.OP_ENDIF {
		return nil, false
	}

	bodyIndex := -1
	for i, value := range payload {
		if i%2 == 0 && len(value) == 0 {
			bodyIndex = i
			break
		}
	}
	var fieldPayloads [][]byte
	var body []byte
	if bodyIndex != -1 {
		fieldPayloads = payload[:bodyIndex]
		body = lo.Flatten(payload[bodyIndex+1:])
	} else {
		fieldPayloads = payload[:]
	}

	var incompleteField bool
	fields := make(fieldMap)
	for _, chunk := range lo.Chunk(fieldPayloads, 2) {
		if len(chunk) != 2 {
			incompleteField = true
			break
		}
		tag := Tag(chunk[0][0])
		fields[tag] = append(fields[tag], chunk[1])
	}

	var duplicateField bool
	for _, values := range fields {
		if len(values) > 1 {
			duplicateField = true
			break
		}
	}

	rawContentEncoding := fields.Take(TagContentEncoding)
	rawContentType := fields.Take(TagContentType)
	rawDelegate := fields.Take(TagDelegate)
	rawMetadata := fields.Take(TagMetadata)
	rawMetaprotocol := fields.Take(TagMetaprotocol)
	rawParent := fields.Take(TagParent)
	rawPointer := fields.Take(TagPointer)
	rawRune := fields.Take(TagRune)

	unrecognizedEvenField := lo.SomeBy(lo.Keys(fields), func(key Tag) bool {
		return key%2 == 0
	})

	var parents []InscriptionId
	if parent, err := NewInscriptionIdFromString(string(rawParent)); err == nil {
		parents = []InscriptionId{parent}
	}

	var delegate *InscriptionId
	if d, err := NewInscriptionIdFromString(string(rawDelegate)); err == nil {
		delegate = &d
	}

	pointer := decodePointer(rawPointer)

	record := InscriptionRecord{
		Body:                  body,
		ContentEncoding:       string(rawContentEncoding),
		ContentType:           string(rawContentType),
		Delegate:              delegate,
		Metadata:              rawMetadata,
		Metaprotocol:          string(rawMetaprotocol),
		Parents:               parents,
		Pointer:               pointer,
		Rune:                  rawRune,
		DuplicateField:        duplicateField,
		IncompleteField:       incompleteField,
		UnrecognizedEvenField: unrecognizedEvenField,
	}
	return &Envelope{
		Record:     record,
		InputIndex: uint32(inputIndex),
		Offset:     offset,
		PushNum:    pushNum,
		Stutter:    stuttered,
	}, false
}

// decodePointer decodes a little-endian pointer value, zero-padded to 8 bytes,
// rejecting values with any non-zero byte beyond the 8th (would overflow u64).
func decodePointer(raw []byte) *uint64 {
	if raw == nil {
		return nil
	}
	if len(raw) > 8 {
		for _, b := range raw[8:] {
			if b != 0 {
				return nil
			}
		}
	}
	padded := make([]byte, 8)
	copy(padded, raw)
	value := binary.LittleEndian.Uint64(padded)
	return &value
}

type fieldMap map[Tag][][]byte

// Take removes and returns the value(s) for tag: chunked tags (metadata) are
// flattened across every occurrence, others return only the first occurrence
// and leave any repeats in place (so duplicate-detection still sees them).
func (f fieldMap) Take(tag Tag) []byte {
	values, ok := f[tag]
	if !ok {
		return nil
	}
	if tag.IsChunked() {
		delete(f, tag)
		return lo.Flatten(values)
	}
	first := values[0]
	rest := values[1:]
	if len(rest) == 0 {
		delete(f, tag)
	} else {
		f[tag] = rest
	}
	return first
}

func extractTapScript(witness [][]byte) (txscript.ScriptTokenizer, bool) {
	witness = removeAnnexFromWitness(witness)
	if len(witness) < 2 {
		return txscript.ScriptTokenizer{}, false
	}
	script := witness[len(witness)-2]
	return txscript.MakeScriptTokenizer(0, script), true
}

func removeAnnexFromWitness(witness [][]byte) [][]byte {
	if len(witness) >= 2 && len(witness[len(witness)-1]) > 0 && witness[len(witness)-1][0] == txscript.TaprootAnnexTag {
		return witness[:len(witness)-1]
	}
	return witness
}
