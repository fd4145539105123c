// Package lit materializes typed Go literals from externally supplied text.
//
// A reference expression, such as the initializer of a constant or the
// default argument of a marker call, is classified into a [Category]. When
// the lookup key is present in a [Lookuper], the raw value is synthesized
// into a new literal of the same category that replaces the reference:
//
//	const Greeting = "Hello"   // Greeting=world   -> "world"
//	const Limit = uint32(0)    // Limit=1          -> uint32(1)
//	const Sep = 'a'            // Sep=\t           -> '\t'
//	var Ports = [3]int{1, 2, 3} // Ports={8, 9}     -> [3]int{8, 9}
//
// When the key is absent nothing changes: the reference is kept exactly as
// authored and is not classified.
//
// Raw values for string, byte string, char, and byte references are written
// as they would appear between the quotes of the Go literal, escapes
// included. Every other category parses the raw value as a Go expression.
//
// [Engine] implements the two entry points used by the file rewriter:
// [Engine.Item] for a decorated declaration and [Engine.Inline] for an
// inline marker call. Every error it returns is an [*Error] that matches one
// of the sentinel kinds with [errors.Is].
package lit
