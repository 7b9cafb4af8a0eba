// Package markup is the in-process page model of the stencil client.
//
// A Page holds a parsed HTML document and the live values of its input
// fields. The fields overlay plays the role of the DOM "value" property:
// edits land in the overlay and only reach the serialised markup when they
// are captured into the value attribute.
//
// Selectors support the subset the client needs: tag, #id, one or more
// .class, [attr], [attr=val] and [attr^=prefix], combined per compound,
// descendant combinator (space) and selector groups (comma).
package markup
