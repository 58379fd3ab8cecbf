// Package extract finds base64 image data in a provider response.
//
// Three strategies are tried in order: image generation call items, a scan
// of every output item's content, and the legacy data array. A candidate is
// accepted only when it is (or is the payload of a data URL that is) at
// least 1000 characters of the base64 alphabet.
package extract
