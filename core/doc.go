// Package core implements the PDF object layer: the object model (numbers,
// strings, names, arrays, dictionaries, streams, indirect references), a
// parser for objects and cross-reference data, and stream decoding.
//
// The package is deliberately limited to what a content-stream consumer
// needs: classic xref tables with incremental updates, xref streams,
// object streams, and FlateDecode. It performs no writing, encryption
// handling, or font processing.
package core
