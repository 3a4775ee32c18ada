// Package wire implements the datagram frame format: a 4-byte big-endian
// length prefix followed by a JSON object payload, one record per datagram.
package wire

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/charliek/logview/internal/domain"
)

// HeaderSize is the size of the length prefix in bytes
const HeaderSize = 4

// Decoder decodes framed datagrams into records. Safe for concurrent use.
type Decoder struct {
	pool fastjson.ParserPool
}

// NewDecoder creates a new Decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode validates the length prefix of buf and deserializes the payload
// into a Record. The declared length must equal the remaining byte count
// exactly; each datagram carries exactly one frame.
func (d *Decoder) Decode(buf []byte) (domain.Record, error) {
	var rec domain.Record

	if len(buf) < HeaderSize {
		return rec, fmt.Errorf("%w: buffer too short (%d bytes)", domain.ErrFraming, len(buf))
	}

	declared := binary.BigEndian.Uint32(buf[:HeaderSize])
	payload := buf[HeaderSize:]
	if int(declared) != len(payload) {
		return rec, fmt.Errorf("%w: declared length %d, payload length %d", domain.ErrFraming, declared, len(payload))
	}

	p := d.pool.Get()
	defer d.pool.Put(p)

	v, err := p.ParseBytes(payload)
	if err != nil {
		return rec, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	obj, err := v.Object()
	if err != nil {
		return rec, fmt.Errorf("%w: payload is not an object", domain.ErrDecode)
	}

	rec.Created = v.GetFloat64(domain.ColumnCreated)
	rec.LevelName = string(v.GetStringBytes(domain.ColumnLevelName))
	rec.Name = string(v.GetStringBytes(domain.ColumnName))
	rec.Msg = string(v.GetStringBytes(domain.ColumnMsg))

	obj.Visit(func(key []byte, value *fastjson.Value) {
		k := string(key)
		switch k {
		case domain.ColumnCreated, domain.ColumnLevelName, domain.ColumnName, domain.ColumnMsg:
			return
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[k] = scalarValue(value)
	})

	return rec, nil
}

// scalarValue converts a fastjson value to a plain Go value. Nested
// objects and arrays are kept as their raw JSON text.
func scalarValue(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		return v.GetFloat64()
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeNull:
		return nil
	default:
		return v.String()
	}
}

// Encode serializes a record into the wire format. This is the producer
// side of the contract, used by tests and by senders.
func Encode(rec domain.Record) ([]byte, error) {
	fields := make(map[string]any, 4+len(rec.Extra))
	for k, v := range rec.Extra {
		fields[k] = v
	}
	fields[domain.ColumnCreated] = rec.Created
	fields[domain.ColumnLevelName] = rec.LevelName
	fields[domain.ColumnName] = rec.Name
	fields[domain.ColumnMsg] = rec.Msg

	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	buf := make([]byte, HeaderSize+len(payload))
	binary.BigEndian.PutUint32(buf[:HeaderSize], uint32(len(payload)))
	copy(buf[HeaderSize:], payload)
	return buf, nil
}
