// Package imaging implements the owned, format-tagged pixel buffer that sits
// behind the image bridge's C boundary.
//
// A Buffer is built by copying raw bytes supplied by a host, can be queried
// for its dimensions and channel count, rotated 90 degrees clockwise, and
// copied back out as raw bytes. Pixel math is delegated to
// github.com/disintegration/imaging; this package only manages layouts and
// ownership.
//
// # Pixel Layout
//
// Raw pixel data is row-major and channel-interleaved with no row padding:
//   - Gray8: 1 byte per pixel
//   - RGB8: 3 bytes per pixel (R, G, B)
//   - RGBA8: 4 bytes per pixel (R, G, B, A), alpha not premultiplied
//
// Coordinates are 0-based with (0,0) at the top-left corner.
//
// # Empty Images
//
// A zero width or zero height never produces an error. It produces the empty
// sentinel returned by Empty, which reports IsEmpty, exports zero bytes,
// rotates to itself and reports 4 channels.
//
// # Ownership
//
// Buffers never alias their inputs or each other. NewBuffer copies the
// caller's bytes and Wrap copies the caller's image, whatever its type.
// Bytes returns a fresh slice and Rotate90 returns a new Buffer. A Buffer is
// not safe for concurrent mutation, but nothing mutates a Buffer after
// construction.
//
// # Error Handling
//
// NewBuffer and RawLen return wrapped sentinel errors for invalid input:
//   - ErrUnsupportedChannels: channel count other than 1, 3 or 4
//   - ErrLengthMismatch: byte count does not match width*height*channels
//   - ErrTooLarge: byte count does not fit in an int
//
// Use errors.Is to test for them.
package imaging
