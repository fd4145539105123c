// Package rewrite applies the literal engine to Go source files.
//
// A file may request materialization in two ways. A directive comment
// decorates a const or var declaration, optionally naming the lookup key:
//
//	//envlit:item
//	const Port = 8080
//
//	//envlit:item "APP_GREETING"
//	var Greeting = "Hello"
//
// A marker call from the envlit package materializes an expression in place:
//
//	timeout := envlit.Lit("TIMEOUT_SECONDS", 30)
//
// The rewriter splices replacements into the original bytes, so everything
// outside a replaced expression is preserved exactly. When every marker
// call has been replaced and the envlit import is no longer used, the import
// is removed as well.
//
// A file with any failing site is not rewritten; [Rewriter.Source] reports
// every failure at once.
package rewrite
