// Package prooftranscript bundles a finished proof's payload and
// commitments into one immutable, serializable unit.
//
// The container's canonical compressed encoding is the persisted and
// transmitted format for proofs: the same in-memory value always encodes
// to the same bytes, curve points are compressed, and aggregate fields are
// length-prefixed. Decoding rejects anything that is not an exact encoding.
package prooftranscript

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/crate-crypto/go-proof-transcript/fiatshamir"
	"github.com/crate-crypto/go-proof-transcript/logger"
	"github.com/crate-crypto/go-proof-transcript/serialization"
)

// ProofFormatVersion is the version byte leading every serialized proof.
// Bumped whenever the byte layout below changes.
const ProofFormatVersion byte = 1

// ProofData is the opaque payload produced by the proving engine. The
// container does not interpret it.
type ProofData []byte

// Commitments holds the prover's commitments, in protocol order.
type Commitments []bn254.G1Affine

// AppendToTranscript absorbs the commitments into a transcript with vector
// framing. The verifier re-absorbs them before re-deriving challenges.
func (c Commitments) AppendToTranscript(label string, transcript *fiatshamir.Transcript) {
	transcript.AppendPoints(label, c)
}

// Proof is the unit of persistence and transmission: one proof payload
// plus the commitments it was produced against. Immutable once
// constructed.
//
// Serialized layout (all lengths little-endian):
//
//	version        1 byte
//	len(Data)      uint32
//	Data           len(Data) bytes
//	len(Commitments) uint32
//	Commitments    32 bytes each, compressed
type Proof struct {
	Data        ProofData
	Commitments Commitments
}

// Size returns the byte size of the full proof in its canonical compressed
// encoding. It does not mutate or persist anything.
func (p *Proof) Size() (int, error) {
	serProof, err := p.Serialize()
	if err != nil {
		return 0, err
	}

	return len(serProof), nil
}

// Serialize returns the canonical compressed encoding of the proof.
func (p *Proof) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.writeTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// SerializeToString returns the canonical compressed encoding as an
// unwrapped base64 string, for transport over text-oriented channels.
func (p *Proof) SerializeToString() (string, error) {
	serProof, err := p.Serialize()
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(serProof), nil
}

// SaveToFile writes the canonical compressed encoding to a newly created
// file at `path`, overwriting any existing file. Filesystem errors are
// returned unchanged.
func (p *Proof) SaveToFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	written, err := p.writeTo(file)
	if err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	log := logger.Logger()
	log.Debug().Str("path", path).Int64("bytes", written).Msg("proof written")

	return nil
}

// FromFile reads a proof from its canonical compressed encoding at `path`.
func FromFile(path string) (*Proof, error) {
	serProof, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	proof, err := DeserializeProof(serProof)
	if err != nil {
		return nil, err
	}

	log := logger.Logger()
	log.Debug().Str("path", path).Int("bytes", len(serProof)).Msg("proof read")

	return proof, nil
}

// DeserializeProof decodes a proof from its canonical compressed encoding.
// The whole input must be consumed: trailing bytes are a decoding error,
// as are truncation, an unknown version byte or an invalid point encoding.
func DeserializeProof(serProof []byte) (*Proof, error) {
	reader := bytes.NewReader(serProof)

	var proof Proof
	if err := proof.readFrom(reader); err != nil {
		return nil, err
	}
	if reader.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrProofDecoding, reader.Len())
	}

	return &proof, nil
}

// DeserializeProofFromString decodes a proof from the base64 form produced
// by SerializeToString.
func DeserializeProofFromString(serProof string) (*Proof, error) {
	rawBytes, err := base64.StdEncoding.DecodeString(serProof)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %s", ErrProofDecoding, err)
	}

	return DeserializeProof(rawBytes)
}

// Equal reports field-wise equality of the payload and every commitment.
func (p *Proof) Equal(other *Proof) bool {
	if !bytes.Equal(p.Data, other.Data) {
		return false
	}
	if len(p.Commitments) != len(other.Commitments) {
		return false
	}
	for i := range p.Commitments {
		if !p.Commitments[i].Equal(&other.Commitments[i]) {
			return false
		}
	}

	return true
}

func (p *Proof) writeTo(w io.Writer) (int64, error) {
	if uint64(len(p.Data)) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: payload exceeds the maximum encodable length", ErrProofEncoding)
	}
	if uint64(len(p.Commitments)) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: commitment count exceeds the maximum encodable length", ErrProofEncoding)
	}

	var written int64

	writeBytes := func(b []byte) error {
		n, err := w.Write(b)
		written += int64(n)
		return err
	}
	writeUint32 := func(v uint32) error {
		var lenBytes [4]byte
		binary.LittleEndian.PutUint32(lenBytes[:], v)
		return writeBytes(lenBytes[:])
	}

	if err := writeBytes([]byte{ProofFormatVersion}); err != nil {
		return written, err
	}

	if err := writeUint32(uint32(len(p.Data))); err != nil {
		return written, err
	}
	if err := writeBytes(p.Data); err != nil {
		return written, err
	}

	if err := writeUint32(uint32(len(p.Commitments))); err != nil {
		return written, err
	}
	for _, commitment := range p.Commitments {
		serPoint := serialization.SerializeG1Point(commitment)
		if err := writeBytes(serPoint[:]); err != nil {
			return written, err
		}
	}

	return written, nil
}

func (p *Proof) readFrom(r *bytes.Reader) error {
	readUint32 := func(field string) (uint32, error) {
		var lenBytes [4]byte
		if _, err := io.ReadFull(r, lenBytes[:]); err != nil {
			return 0, fmt.Errorf("%w: truncated stream reading %s", ErrProofDecoding, field)
		}
		return binary.LittleEndian.Uint32(lenBytes[:]), nil
	}

	var version [1]byte
	if _, err := io.ReadFull(r, version[:]); err != nil {
		return fmt.Errorf("%w: truncated stream reading format version", ErrProofDecoding)
	}
	if version[0] != ProofFormatVersion {
		return fmt.Errorf("%w: unknown format version %d", ErrProofDecoding, version[0])
	}

	dataLen, err := readUint32("payload length")
	if err != nil {
		return err
	}
	// Check the length prefix against the remaining input before
	// allocating, so a corrupt prefix cannot demand gigabytes.
	if uint64(dataLen) > uint64(r.Len()) {
		return fmt.Errorf("%w: truncated stream reading payload", ErrProofDecoding)
	}
	data := make(ProofData, dataLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return fmt.Errorf("%w: truncated stream reading payload", ErrProofDecoding)
	}

	numCommitments, err := readUint32("commitment count")
	if err != nil {
		return err
	}
	if uint64(numCommitments)*serialization.CompressedG1Size > uint64(r.Len()) {
		return fmt.Errorf("%w: truncated stream reading commitments", ErrProofDecoding)
	}
	serPoints := make([]serialization.G1Point, numCommitments)
	for i := range serPoints {
		if _, err := io.ReadFull(r, serPoints[i][:]); err != nil {
			return fmt.Errorf("%w: truncated stream reading commitment %d", ErrProofDecoding, i)
		}
	}
	commitments, err := serialization.DeserializeG1Points(serPoints)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrProofDecoding, err)
	}

	p.Data = data
	p.Commitments = commitments

	return nil
}
