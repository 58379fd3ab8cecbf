// Package imaging inspects image bytes exchanged with the provider.
//
// Generated images arrive as base64 text. Before one is written to disk its
// bytes are sniffed and decoded so that non-image payloads are rejected and
// the real format and dimensions can be logged. Nothing here re-encodes or
// transforms pixels; bytes are written exactly as received.
//
// Input images for edits travel the other way: LoadDataURL reads a file and
// wraps it in a data URL for the request payload.
//
// # Formats
//
// Decoding goes through github.com/disintegration/imaging, which registers
// PNG, JPEG, GIF, BMP and TIFF. Other image types (WebP, for instance) are
// still accepted by sniffing but report no dimensions.
package imaging
