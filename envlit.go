// Package envlit provides the markers recognized by the envlit generator.
//
// A const or var declaration preceded by an [Directive] comment is
// materialized from the environment variable named after the declared
// identifier, or from the quoted key given after the directive:
//
//	//envlit:item
//	const Port = 8080
//
//	//envlit:item "APP_GREETING"
//	var Greeting = "Hello"
//
// Calls to [Lit] are replaced by the generator with a literal of the same
// kind as the default argument, or with the default argument itself when the
// key is unset:
//
//	var Origin = envlit.Lit("ORIGIN", Vec2{X: 0, Y: 0})
//
// Code that has not been generated still compiles: [Lit] returns its default.
package envlit

// ImportPath is the import path the generator uses to recognize [Lit] calls.
const ImportPath = "github.com/ardnew/envlit"

// Directive is the comment prefix marking a declaration for materialization.
const Directive = "//envlit:item"

// Lit returns def. The envlit generator replaces each call with a literal
// materialized from the environment variable named key.
func Lit[T any](key string, def T) T {
	return def
}
