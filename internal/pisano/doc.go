// Package pisano computes Pisano periods: the length of the cycle the
// Fibonacci sequence enters when taken modulo m. Alongside the period, the
// analyzer records whether that cycle visits every residue class in [0, m).
//
// Analysis is a pure function of the modulus and is safe to call from many
// goroutines at once.
package pisano
