// Package normalisers holds the document model rules applied to every
// connector's output before it reaches the store.
//
//   - html: markup to plain text and bounded excerpts
//   - document: field normalisation and validation
package normalisers
