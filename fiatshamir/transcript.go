// Package fiatshamir implements the transcript that turns the interactive
// proof protocol into a non-interactive one.
//
// Every value the prover commits to is absorbed into the transcript under a
// label describing its role, and every verifier challenge is derived
// deterministically from the absorbed state. The verifier replays the same
// absorptions to re-derive the same challenges.
package fiatshamir

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/gtank/merlin"

	"github.com/crate-crypto/go-proof-transcript/internal/utils"
	"github.com/crate-crypto/go-proof-transcript/serialization"
)

// Label under which the protocol name is absorbed. The protocol name is
// always the first absorption, binding all subsequent challenges to it.
const labelProtocolName = "protocol-name"

// Delimiters absorbed around vector elements. Without them a prover could
// re-segment a vector into a different one with the same digest.
const (
	vectorBeginDelimiter = "begin_append_vector"
	vectorEndDelimiter   = "end_append_vector"
)

// Application label for the underlying sponge. Separates transcripts of
// this library from any other user of the same sponge construction.
const transcriptLabel = "proof-transcript v1"

// Number of bytes squeezed per challenge. Double the scalar field's width,
// so the bias from reducing mod the field order is negligible.
const challengeByteSize = 64

// Transcript is a deterministic absorb/derive state machine over a
// cryptographic sponge.
//
// A transcript is exclusively owned by the single proving or verifying pass
// that created it and must not be shared between goroutines; the order of
// absorptions and squeezes is semantically significant.
type Transcript struct {
	state *merlin.Transcript
}

// NewTranscript creates a transcript bound to the given protocol name.
//
// Binding happens at construction so that no absorption can precede it:
// two transcripts with different protocol names derive unrelated
// challenges even for identical subsequent absorptions.
func NewTranscript(protocolName string) *Transcript {
	transcript := &Transcript{
		state: merlin.NewTranscript(transcriptLabel),
	}
	transcript.appendMessage(labelProtocolName, []byte(protocolName))

	return transcript
}

func (t *Transcript) appendMessage(label string, message []byte) {
	t.state.AppendMessage([]byte(label), message)
}

// AppendScalar absorbs the canonical encoding of `scalar` under `label`.
func (t *Transcript) AppendScalar(label string, scalar fr.Element) {
	serScalar := serialization.SerializeScalar(scalar)
	t.appendMessage(label, serScalar[:])
}

// AppendPoint absorbs the compressed encoding of `point` under `label`.
func (t *Transcript) AppendPoint(label string, point bn254.G1Affine) {
	serPoint := serialization.SerializeG1Point(point)
	t.appendMessage(label, serPoint[:])
}

// AppendScalars absorbs a vector of scalars under `label`, framed by
// begin/end delimiters.
func (t *Transcript) AppendScalars(label string, scalars []fr.Element) {
	t.appendMessage(label, []byte(vectorBeginDelimiter))
	for _, scalar := range scalars {
		t.AppendScalar(label, scalar)
	}
	t.appendMessage(label, []byte(vectorEndDelimiter))
}

// AppendPoints absorbs a vector of points under `label`, framed by
// begin/end delimiters.
func (t *Transcript) AppendPoints(label string, points []bn254.G1Affine) {
	t.appendMessage(label, []byte(vectorBeginDelimiter))
	for _, point := range points {
		t.AppendPoint(label, point)
	}
	t.appendMessage(label, []byte(vectorEndDelimiter))
}

// ChallengeScalar derives a challenge from the absorbed state, keyed by
// `label`.
//
// 64 bytes are squeezed from the sponge, interpreted as a little-endian
// integer and reduced mod the scalar field order (wide reduction). Each
// squeeze advances the sponge state, so a challenge is never repeatable
// from the same point of the protocol.
func (t *Transcript) ChallengeScalar(label string) fr.Element {
	challengeBytes := t.state.ExtractBytes([]byte(label), challengeByteSize)

	// Reverse the bytes, so that we reduce the little-endian
	// representation
	utils.Reverse(challengeBytes)

	var challenge fr.Element
	challenge.SetBytes(challengeBytes)

	return challenge
}

// ChallengeVector derives n challenges under the same label. Element i is
// the i'th squeeze, so prover and verifier must request vectors in
// matching order and length.
func (t *Transcript) ChallengeVector(label string, n int) []fr.Element {
	challenges := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		challenges[i] = t.ChallengeScalar(label)
	}

	return challenges
}
