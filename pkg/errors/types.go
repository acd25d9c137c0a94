// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import "strconv"

// Status is a request status code.
type Status uint64

const (
	// OK means the request completed successfully.
	OK Status = 200

	// BadRequest means the request was malformed or invalid.
	BadRequest Status = 400

	// Unauthorized means the signer is not authorized to perform the request.
	Unauthorized Status = 401

	// NotFound means an account or record does not exist. Uninitialized state
	// is reported with this code.
	NotFound Status = 404

	// NotAllowed means the requested action is not allowed.
	NotAllowed Status = 405

	// Conflict means the request conflicts with existing state.
	Conflict Status = 409

	// EncodingError means encoding or decoding failed.
	EncodingError Status = 420

	// PeerNotConfigured means no remote peer is registered for the
	// destination endpoint.
	PeerNotConfigured Status = 440

	// NoLibraryConfigured means the endpoint has no usable send library for
	// the path, or the library is blocked.
	NoLibraryConfigured Status = 441

	// UnsupportedLibraryVersion means the send library reported a version
	// triple that has no strategy.
	UnsupportedLibraryVersion Status = 442

	// InternalError means an internal error occurred.
	InternalError Status = 500

	// UnknownError means an unknown error occurred.
	UnknownError Status = 501

	// DerivationError means a program-derived address could not be found for
	// a fixed seed set. It indicates a programming error.
	DerivationError Status = 502

	// FatalError means something has gone seriously wrong.
	FatalError Status = 503
)

var statusNames = map[Status]string{
	OK:                        "ok",
	BadRequest:                "badRequest",
	Unauthorized:              "unauthorized",
	NotFound:                  "notFound",
	NotAllowed:                "notAllowed",
	Conflict:                  "conflict",
	EncodingError:             "encodingError",
	PeerNotConfigured:         "peerNotConfigured",
	NoLibraryConfigured:       "noLibraryConfigured",
	UnsupportedLibraryVersion: "unsupportedLibraryVersion",
	InternalError:             "internalError",
	UnknownError:              "unknownError",
	DerivationError:           "derivationError",
	FatalError:                "fatalError",
}

// String returns the name of the status.
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Status:" + strconv.FormatUint(uint64(s), 10)
}

// StatusByName returns the named status.
func StatusByName(name string) (Status, bool) {
	for s, n := range statusNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}
