// Package asterix is a pure Go implementation of EUROCONTROL ASTERIX
// surveillance data decoding.
//
// ASTERIX (All Purpose Structured Eurocontrol Surveillance Information
// Exchange) is the wire format radars, multilateration systems, and ATM
// processing chains use to exchange plot and track data. A category's
// wire layout is not baked into this package; it is compiled at runtime
// from an XML category definition via LoadDefinition, then used to
// Decode raw CAT/LEN-framed byte buffers into a tree of typed values,
// which Render turns into text, JSON, or XML.
//
// This package only decodes. Encoding ASTERIX back to wire bytes is out
// of scope; see the asterix/decode package's test helpers for the
// narrow round-trip encoder used to validate decode correctness.
package asterix

// Version identifies this module's release for diagnostic output.
const Version = "0.1.0"
