// Package capi is the Go side of the image bridge's C boundary.
//
// A host passes raw pixel memory in and receives opaque integer handles
// back. Every Buffer lives in a Registry on the Go side; the host only ever
// holds a Handle, so no Go pointer crosses into C and no C pointer is kept
// after the call that supplied it.
//
// # Contract Violations
//
// The boundary fails fast. A nil pixel pointer with non-zero dimensions, a
// channel count other than 1, 3 or 4, an unrepresentable size, and any use of
// an unknown or released handle panic with a *ContractViolation. When the
// panic escapes an exported cgo function it terminates the host process,
// which is the intended outcome: there is no safe way to continue with
// unverified foreign memory.
//
// A zero width or height is not a violation. It yields the empty sentinel,
// which the host detects with IsEmpty.
//
// # Logging
//
// The package is silent unless SetLogger installs a *slog.Logger.
package capi
