package mixer

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Matrix is a real 2x2 matrix applied to (I, Q) column vectors.
type Matrix [2][2]float64

// Identity returns the identity matrix (no correction).
func Identity() Matrix {
	return Matrix{{1, 0}, {0, 1}}
}

// Apply multiplies the matrix with the column vector (i, q).
func (m Matrix) Apply(i, q float64) (float64, float64) {
	return m[0][0]*i + m[0][1]*q, m[1][0]*i + m[1][1]*q
}

// Mul returns the matrix product m*n.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		{m[0][0]*n[0][0] + m[0][1]*n[1][0], m[0][0]*n[0][1] + m[0][1]*n[1][1]},
		{m[1][0]*n[0][0] + m[1][1]*n[1][0], m[1][0]*n[0][1] + m[1][1]*n[1][1]},
	}
}

// Det returns the determinant.
func (m Matrix) Det() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Transposed returns the transposed matrix.
func (m Matrix) Transposed() Matrix {
	return Matrix{{m[0][0], m[1][0]}, {m[0][1], m[1][1]}}
}

// Coefficients returns the matrix flattened in row-major order, the
// layout control-processor mixer configurations expect.
func (m Matrix) Coefficients() [4]float64 {
	return [4]float64{m[0][0], m[0][1], m[1][0], m[1][1]}
}

// blockBuf holds pooled scratch memory for block application.
type blockBuf struct {
	data []float64
}

var blockPool = sync.Pool{
	New: func() any { return &blockBuf{} },
}

// ApplyBlock multiplies the matrix with every (srcI[k], srcQ[k]) pair and
// writes the results to dstI and dstQ. In-place use (dst aliasing src) is
// supported. All four slices must have the same length.
//
// The inner loops use SIMD-optimized implementations when available
// (AVX2, SSE2, NEON). Scratch buffers are pooled internally, so in steady
// state this does not allocate.
func (m Matrix) ApplyBlock(dstI, dstQ, srcI, srcQ []float64) error {
	n := len(srcI)
	if n == 0 {
		return applyBlock(m, dstI, dstQ, srcI, srcQ, nil)
	}

	buf := blockPool.Get().(*blockBuf)
	need := 3 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	err := applyBlock(m, dstI, dstQ, srcI, srcQ, buf.data)
	blockPool.Put(buf)

	return err
}

// applyBlock performs the matrix-vector products over the blocks using
// caller-owned scratch of at least 3*len(srcI) values.
func applyBlock(m Matrix, dstI, dstQ, srcI, srcQ, scratch []float64) error {
	n := len(srcI)
	if len(srcQ) != n || len(dstI) != n || len(dstQ) != n {
		return fmt.Errorf("mixer: block length mismatch: dstI=%d dstQ=%d srcI=%d srcQ=%d",
			len(dstI), len(dstQ), n, len(srcQ))
	}
	if n == 0 {
		return nil
	}

	ci := scratch[:n]
	cq := scratch[n : 2*n]
	tmp := scratch[2*n : 3*n]

	// Copies make aliased dst/src safe.
	copy(ci, srcI)
	copy(cq, srcQ)

	vecmath.ScaleBlock(dstI, ci, m[0][0])
	vecmath.ScaleBlock(tmp, cq, m[0][1])
	vecmath.AddBlockInPlace(dstI, tmp)

	vecmath.ScaleBlock(dstQ, ci, m[1][0])
	vecmath.ScaleBlock(tmp, cq, m[1][1])
	vecmath.AddBlockInPlace(dstQ, tmp)

	return nil
}
