// Package sexpr reads parenthesized prefix expressions and evaluates them
// against a table of binary operators.
//
// Parsing turns text like "(+ (+ 1 1) (- 2 1))" into a nested List of Values
// using an explicit stack of open lists. Evaluation walks the top level of a
// List left to right. A symbol applies the operator of that name to the next
// two elements, which must be integers or nested lists; an integer stands for
// itself. The result of a List is the sum of all of its top-level forms, so
// "(1 2 + 3 4)" is 10.
//
// Integers are 32-bit and floats are 32-bit. Operators only combine values of
// the same kind; adding an Int to a Float is an error, not a conversion.
package sexpr
