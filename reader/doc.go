// Package reader opens PDF documents and hands out their pages' decoded
// content streams. It buffers the whole source, resolves the
// cross-reference chain (classic tables and xref streams, including
// incremental updates), and walks the page tree in document order.
//
// Only the features the producer's documents exercise are supported; in
// particular FlateDecode is the only stream filter.
package reader
