// Package bigint implements the fixed-width unsigned integer type that
// crosses the boundary between circuit-level constants/inputs and the
// backend's prime field scalars.
package bigint
