// Package narrative produces the investigative text shown next to a
// scenario graph.
//
// Every function is pure: text is built by interpolating integer counts into
// fixed templates, with no randomness and no external state. Outputs are
// plain text (no markup) trimmed of surrounding whitespace.
package narrative
