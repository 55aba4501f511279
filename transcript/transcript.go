// Package transcript implements the Fiat-Shamir transcript shared by the
// KZG, GWC and BDFG provers and verifiers: a running hash state absorbing
// every scalar and point exchanged, from which challenges are squeezed.
package transcript

import (
	"errors"
	"hash"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var ErrShortMessage = errors.New("transcript: message too short to read requested field")

// Marshaler is the narrow trait points must satisfy to be absorbed and
// replayed: an uncompressed, fixed-size wire encoding.
type Marshaler interface {
	Marshal() []byte
}

var (
	scalarPrefix    = []byte("scalar")
	pointPrefix     = []byte("point")
	challengePrefix = []byte("challenge")
)

// core is the shared hash-absorbing state of both Writer and Reader.
type core struct {
	newHash func() hash.Hash
	h       hash.Hash
	person  []byte
}

func newCore(newHash func() hash.Hash, person []byte) core {
	c := core{newHash: newHash, person: person}
	c.reset()
	return c
}

func (c *core) reset() {
	c.h = c.newHash()
	c.h.Write(c.person)
}

func (c *core) absorbScalar(e fr.Element) []byte {
	c.h.Write(scalarPrefix)
	b := marshalScalarLE(e)
	c.h.Write(b)
	return b
}

func (c *core) absorbPoint(p Marshaler) []byte {
	c.h.Write(pointPrefix)
	b := p.Marshal()
	c.h.Write(b)
	return b
}

// Challenge squeezes a single scalar challenge from the current transcript
// state: the digest of the state with the challenge prefix and a zero byte
// appended, interpreted as a little-endian integer reduced modulo the scalar
// field. This single-block squeeze is accepted as-is (see DESIGN.md); prover
// and verifier must agree, which they do by construction.
func (c *core) Challenge() fr.Element {
	c.h.Write(challengePrefix)
	c.h.Write([]byte{0})
	digest := c.h.Sum(nil)
	var e fr.Element
	var bi big.Int
	bi.SetBytes(reverse(digest))
	e.SetBigInt(&bi)
	return e
}

// Writer builds a transcript message by absorbing scalars and points in
// order, recording the exact bytes written so the resulting message can be
// replayed by a Reader.
type Writer struct {
	core
	message []byte
}

// NewWriter starts a fresh write transcript. newHash is typically
// sha256.New; person domain-separates independent transcript instances.
func NewWriter(newHash func() hash.Hash, person []byte) *Writer {
	return &Writer{core: newCore(newHash, person)}
}

// WriteScalar absorbs e and appends its wire encoding to the message.
func (w *Writer) WriteScalar(e fr.Element) {
	w.message = append(w.message, w.absorbScalar(e)...)
}

// WritePoint absorbs p and appends its wire encoding to the message.
func (w *Writer) WritePoint(p Marshaler) {
	w.message = append(w.message, w.absorbPoint(p)...)
}

// Message returns the accumulated wire message.
func (w *Writer) Message() []byte { return w.message }

// Reader replays a transcript message, absorbing each scalar or point into
// the hash state exactly as the writer did, so that Reader.Challenge() and
// the original Writer.Challenge() agree.
type Reader struct {
	core
	message []byte
	offset  int
}

// NewReader starts a read transcript over message, an encoding produced by
// a matching Writer.
func NewReader(newHash func() hash.Hash, person []byte, message []byte) *Reader {
	return &Reader{core: newCore(newHash, person), message: message}
}

// ReadScalar decodes the next 32-byte little-endian scalar from the message
// and absorbs it into the hash state.
func (r *Reader) ReadScalar() (fr.Element, error) {
	const scalarSize = 32
	if len(r.message) < r.offset+scalarSize {
		return fr.Element{}, ErrShortMessage
	}
	buf := r.message[r.offset : r.offset+scalarSize]
	r.offset += scalarSize
	e := unmarshalScalarLE(buf)
	r.absorbScalar(e)
	return e, nil
}

// ReadPoint decodes the next uncompressed point of the given wire size from
// the message via decode, and absorbs the raw bytes into the hash state.
func (r *Reader) ReadPoint(size int, decode func([]byte) (Marshaler, error)) (Marshaler, error) {
	if len(r.message) < r.offset+size {
		return nil, ErrShortMessage
	}
	buf := r.message[r.offset : r.offset+size]
	r.offset += size
	p, err := decode(buf)
	if err != nil {
		return nil, err
	}
	r.h.Write(pointPrefix)
	r.h.Write(buf)
	return p, nil
}

func marshalScalarLE(e fr.Element) []byte {
	var bi big.Int
	e.BigInt(&bi)
	be := make([]byte, 32)
	bi.FillBytes(be)
	return reverse(be)
}

func unmarshalScalarLE(b []byte) fr.Element {
	var bi big.Int
	bi.SetBytes(reverse(b))
	var e fr.Element
	e.SetBigInt(&bi)
	return e
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
