// Package layout computes the placement of every tile in a generated grid.
//
// # Overview
//
// [Layout] is a pure function: it reads a [params.Set], draws from a
// [RandomSource] and returns one [Placement] per grid cell. It never touches a
// scene; turning placements into objects is the job of package session.
//
// # Algorithm
//
// Columns are the outer loop and rows the inner loop. Each column draws a gap
// and a width; each row draws a depth, a height, a row gap (except the first
// row), a height offset and three rotation angles. Offsets accumulate centre
// to centre, so neighbouring tiles touch exactly when the sampled gap is zero:
//
//	x(i) = x(i-1) + width(i-1)/2 + gapX(i) + width(i)/2
//	y(j) = y(j-1) + depth(j-1)/2 + gapY(j) + depth(j)/2
//
// The column gap is also applied before the first column, which shifts the
// whole grid by one gap. Row offsets restart at every column, so each column is
// an independent strip.
//
// # Determinism
//
// The shape of the result (count and order of placements) depends only on the
// grid size. The sampled values depend on the random source; pass a seeded
// source from [NewSeeded] for repeatable output.
package layout
