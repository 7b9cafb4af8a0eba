// Package converters provides implementations of the Converter interface
// for the embedded fragments of a stencil. Each converter owns one kind of
// element and the attributes it round-trips.
//
// Converters are registered with the ConverterRegistry at startup, math
// before exec.
package converters
