// Package codec owns the versioned primitive wire encoding shared by admin
// request and response payloads.
//
// Ownership boundary:
// - fixed width integers and bools (big-endian)
// - i16 length-prefixed strings and optional strings
// - Encoder/Decoder contracts threaded with a protocol Version
package codec
