// Package lines provides line-oriented numeric I/O for toe_lis streams.
//
// A toe_lis document holds exactly one number per line. This package hides
// the line splitting and number formatting so the format layer only deals
// with values and line positions:
//
//   - [Reader] parses each line as a float64 first and can narrow it to an
//     integer, tracking the 1-based number of the last line consumed.
//   - [Writer] buffers output and writes integers and floats in their
//     shortest round-trip form, one per line.
//
// # Number Parsing
//
// Every line is parsed with [strconv.ParseFloat] after trimming surrounding
// whitespace, so legacy files that stored integers as "4.0" decode the same
// as "4". Values too large for float64 decode as infinities rather than
// failing. Integer fields are truncated toward zero and must be finite.
//
// # Number Formatting
//
// Floats are written with the 'g' verb and precision -1, which yields the
// shortest text that parses back to the identical value for the given bit
// size. The writer keeps the first error it sees, in the manner of
// [bufio.Writer]; check [Writer.Flush] or [Writer.Err] once at the end.
package lines
