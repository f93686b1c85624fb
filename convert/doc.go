/*
Package convert maps domain values to and from generic documents.

A Converter encodes a Go value into a doc.Doc and decodes a doc.Doc back
into a Go value. Reflect returns the basic converter, which is fixed to
whatever shape the value marshals to and knows nothing about versions.

Migrating wraps any Converter with version awareness: documents are
migrated to the wrapped converter's current version before decoding, and
encoded documents are migrated to a requested target version before
being returned. Wrapping is plain composition, so a Migrating converter
can itself be wrapped.
*/
package convert
