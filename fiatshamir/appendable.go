package fiatshamir

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Appendable is implemented by values that can bind themselves to a
// transcript.
//
// It lets the protocol layer absorb heterogeneous commitment and opening
// data through one uniform call. New value types participate by
// implementing this interface; the Transcript itself never changes.
type Appendable interface {
	AppendToTranscript(label string, transcript *Transcript)
}

// Scalar is a field element that can be absorbed into a transcript.
type Scalar fr.Element

func (s Scalar) AppendToTranscript(label string, transcript *Transcript) {
	transcript.AppendScalar(label, fr.Element(s))
}

// ScalarVector is a vector of field elements, absorbed with begin/end
// framing.
type ScalarVector []fr.Element

func (v ScalarVector) AppendToTranscript(label string, transcript *Transcript) {
	transcript.AppendScalars(label, v)
}

// Point is a group element that can be absorbed into a transcript.
type Point bn254.G1Affine

func (p Point) AppendToTranscript(label string, transcript *Transcript) {
	transcript.AppendPoint(label, bn254.G1Affine(p))
}
