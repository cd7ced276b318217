// Package calc implements the elementary numerical methods of the lab:
// finite-difference differentiation and composite quadrature rules,
// plus convergence sweeps that trace each rule's error against its
// textbook scaling order.
package calc
