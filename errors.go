package prooftranscript

import "errors"

var (
	ErrProofEncoding = errors.New("proof could not be canonically encoded")
	ErrProofDecoding = errors.New("bytes are not a valid canonical encoding of a proof")
)
