// Package serialization implements the canonical byte encoding for the
// field and curve elements that proofs are made of.
//
// Scalars are encoded as fixed-width little-endian integers and group
// elements use the compressed point encoding, so that the encoding of any
// value is unique and byte-stable across runs and platforms.
package serialization

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/sync/errgroup"

	"github.com/crate-crypto/go-proof-transcript/internal/utils"
)

// This is the number of bytes needed to represent a
// group element in G1 when compressed.
const CompressedG1Size = 32

// This is the number of bytes needed to represent a field
// element corresponding to the order of the G1 group.
const SerializedScalarSize = 32

type (
	Scalar  = [SerializedScalarSize]byte
	G1Point = [CompressedG1Size]byte
)

func SerializeG1Point(affine bn254.G1Affine) G1Point {
	return affine.Bytes()
}

func DeserializeG1Point(serPoint G1Point) (bn254.G1Affine, error) {
	var point bn254.G1Affine

	_, err := point.SetBytes(serPoint[:])
	if err != nil {
		return bn254.G1Affine{}, ErrInvalidPointEncoding
	}

	return point, nil
}

func SerializeG1Points(points []bn254.G1Affine) []G1Point {
	serPoints := make([]G1Point, len(points))
	for i := 0; i < len(points); i++ {
		serPoints[i] = SerializeG1Point(points[i])
	}

	return serPoints
}

// DeserializeG1Points decodes a batch of compressed points.
//
// Decoding a point includes a subgroup check, which is relatively
// expensive, so the checks are run on multiple goroutines.
func DeserializeG1Points(serPoints []G1Point) ([]bn254.G1Affine, error) {
	points := make([]bn254.G1Affine, len(serPoints))

	var errG errgroup.Group
	for i := 0; i < len(serPoints); i++ {
		_i := i
		errG.Go(func() error {
			point, err := DeserializeG1Point(serPoints[_i])
			if err != nil {
				return err
			}
			points[_i] = point
			return nil
		})
	}

	if err := errG.Wait(); err != nil {
		return nil, err
	}

	return points, nil
}

func SerializeScalar(element fr.Element) Scalar {
	byts := element.Bytes()
	utils.Reverse(byts[:])

	return byts
}

func DeserializeScalar(serScalar Scalar) (fr.Element, error) {
	// gnark uses big-endian but the format we use is little-endian
	// so we reverse the scalar
	utils.Reverse(serScalar[:])
	scalar, err := utils.ReduceCanonicalBigEndian(serScalar[:])
	if err != nil {
		return fr.Element{}, ErrNonCanonicalScalar
	}

	return scalar, nil
}

func DeserializeScalars(serScalars []Scalar) ([]fr.Element, error) {
	scalars := make([]fr.Element, len(serScalars))
	for i := 0; i < len(scalars); i++ {
		scalar, err := DeserializeScalar(serScalars[i])
		if err != nil {
			return nil, err
		}
		scalars[i] = scalar
	}

	return scalars, nil
}
