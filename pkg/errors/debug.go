// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

var trackLocation = false

// EnableLocationTracking enables recording the call site of every error
// created by a factory. Intended for debugging.
func EnableLocationTracking() {
	trackLocation = true
}

// DisableLocationTracking disables location tracking.
func DisableLocationTracking() {
	trackLocation = false
}
