/*
Package migrate moves documents between schema versions.

A Migration is one reversible step between two adjacent versions. A
Manager holds a set of steps forming a chain, derives the sorted list of
known versions from their endpoints, and migrates a document between any
two known versions by applying the steps in between, forward or in
reverse.

Steps can be written as plain functions (Func), as RFC 6902 JSON patches
(Patch), or as expression-computed field assignments (Expr). LoadSteps
reads a patch-backed step set from a YAML or JSON definition.
*/
package migrate
