// Package contentstream parses decoded PDF content streams into an ordered
// sequence of operations. An operation is an operator name plus the operand
// objects that preceded it.
//
// The parser understands the full content-stream operand syntax (numbers,
// strings, hex strings, names, arrays, inline dictionaries, booleans,
// null); it attaches no meaning to operators, which is left to the
// consumer.
package contentstream
