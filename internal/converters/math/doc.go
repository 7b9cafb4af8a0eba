// Package math provides a Converter for math notation elements: script
// elements whose type names a TeX or AsciiMath notation. The element text
// is the formula source.
package math
