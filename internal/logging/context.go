// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import "context"

type _contextKey struct{}

var contextKey _contextKey

// With returns a context carrying the given key/value pairs in addition to
// any the context already carries.
func With(ctx context.Context, keyVals ...interface{}) context.Context {
	old := KeyVals(ctx)
	kv := make([]interface{}, 0, len(old)+len(keyVals))
	kv = append(kv, old...)
	kv = append(kv, keyVals...)
	return context.WithValue(ctx, contextKey, kv)
}

// KeyVals returns the key/value pairs attached to the context.
func KeyVals(ctx context.Context) []interface{} {
	v, _ := ctx.Value(contextKey).([]interface{})
	return v
}

// FromContext returns the logger with the context's key/value pairs applied.
func FromContext(ctx context.Context, l Logger) Logger {
	kv := KeyVals(ctx)
	if len(kv) == 0 {
		return l
	}
	return l.With(kv...)
}
