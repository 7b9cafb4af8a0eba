// Package exec provides a Converter for executable code blocks: pre
// elements carrying a data-exec directive such as "r show". The optional
// data-error attribute holds the error the host reported for the block.
package exec
