// Package orbit generates orbit rings and advances bodies along them.
//
// Motion is uniform and circular: each body's angle grows by
// 2π/period per unit of time, scaled by a global speed multiplier. There
// is no interaction between bodies.
package orbit
