// Package value implements the typed-primitive sum carried by encoded items.
//
// A Value is one of Null, String, Boolean, Int, Long, Float, Double or a
// Sequence of Values. The set is closed: encoding and decoding switch over
// Kind exhaustively instead of inspecting arbitrary runtime types, and FromGo
// is the single place where native Go values enter the model.
package value
