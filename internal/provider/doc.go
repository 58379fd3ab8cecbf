// Package provider talks to the image generation endpoint.
//
// A Payload carries one user message with the prompt text and, for edits,
// the source image as a data URL. Replies are decoded into Response, a
// tagged union over the layouts the endpoint is known to produce: an
// "output" array of content items, a legacy "data" array, or a bare error
// object. Candidate image fields are kept raw and only read when they hold
// JSON strings, so a field that changes type does not fail the whole body.
//
// Failures are typed. TransportError means no HTTP response arrived,
// ProviderError is a non-2xx status with the provider's message, and
// MalformedBodyError is a 2xx reply that could not be parsed.
package provider
