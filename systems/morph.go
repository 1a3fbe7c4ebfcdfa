package systems

import (
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/nebula/shapes"
)

// Morph moves every coordinate of pos a fraction rate of the way toward the
// matching coordinate of target: pos = (1-rate)*pos + rate*target.
// The approach is geometric, so positions never land exactly on target.
func Morph(pos, target shapes.Buffer, rate float32) {
	n := len(pos)
	if len(target) < n {
		n = len(target)
	}
	if n == 0 {
		return
	}
	p := blas32.Vector{N: n, Inc: 1, Data: pos[:n]}
	t := blas32.Vector{N: n, Inc: 1, Data: target[:n]}
	blas32.Scal(1-rate, p)
	blas32.Axpy(rate, t, p)
}
