package assoc

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Linear fits, for each SNP, a normal-likelihood model with an intercept and
// the SNP's genotype term, and compares it against the intercept-only null
// with a 1-df likelihood-ratio test. When a kinship matrix is supplied, both
// models are whitened by its Cholesky factor first, which turns the
// generalized least-squares problem into the same ordinary one. Estimating
// the variance components of a full mixed model is out of scope; the kinship
// matrix is taken as the covariance as given.
type Linear struct{}

var _ Scanner = Linear{}

func (Linear) Scan(y *mat.VecDense, g *mat.Dense, k *mat.SymDense) ([]Result, error) {
	n, m := g.Dims()
	if y.Len() != n {
		return nil, fmt.Errorf("assoc: %d trait values for %d genotype rows", y.Len(), n)
	}
	if n < 3 {
		return nil, fmt.Errorf("assoc: %d accessions are too few to fit the model", n)
	}

	ones := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		ones.SetVec(i, 1)
	}

	yv, xg, u := y, g, ones
	if k != nil {
		if kn := k.Symmetric(); kn != n {
			return nil, fmt.Errorf("assoc: kinship is %dx%d for %d accessions", kn, kn, n)
		}

		var err error
		if yv, xg, u, err = whiten(k, y, g, ones); err != nil {
			return nil, err
		}
	}

	// Null model: trait on intercept alone
	suu, suy := 0.0, 0.0
	for i := 0; i < n; i++ {
		suu += u.AtVec(i) * u.AtVec(i)
		suy += u.AtVec(i) * yv.AtVec(i)
	}
	if suu == 0 {
		return nil, errors.New("assoc: degenerate whitened intercept")
	}
	b := suy / suu
	rssNull := 0.0
	for i := 0; i < n; i++ {
		r := yv.AtVec(i) - b*u.AtVec(i)
		rssNull += r * r
	}

	chi := distuv.ChiSquared{K: 1}

	out := make([]Result, m)
	for j := 0; j < m; j++ {
		sux, sxx, sxy := 0.0, 0.0, 0.0
		for i := 0; i < n; i++ {
			x := xg.At(i, j)
			sux += u.AtVec(i) * x
			sxx += x * x
			sxy += x * yv.AtVec(i)
		}

		det := suu*sxx - sux*sux
		if det <= 1e-12*suu*sxx || sxx == 0 {
			// Constant or collinear genotype column carries no signal. The
			// MAF filter removes these upstream; guard anyway.
			out[j] = Result{PValue: 1}
			continue
		}

		b0 := (sxx*suy - sux*sxy) / det
		b1 := (suu*sxy - sux*suy) / det

		rss := 0.0
		for i := 0; i < n; i++ {
			r := yv.AtVec(i) - b0*u.AtVec(i) - b1*xg.At(i, j)
			rss += r * r
		}

		var p float64
		switch {
		case rss <= 0:
			p = 0
		case rss >= rssNull:
			p = 1
		default:
			p = chi.Survival(float64(n) * math.Log(rssNull/rss))
		}

		out[j] = Result{PValue: p, Effect: b1}
	}

	return out, nil
}

// whiten premultiplies y, g, and the intercept by the inverse lower Cholesky
// factor of k.
func whiten(k *mat.SymDense, y *mat.VecDense, g *mat.Dense, ones *mat.VecDense) (*mat.VecDense, *mat.Dense, *mat.VecDense, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(k); !ok {
		return nil, nil, nil, errors.New("assoc: kinship matrix is not positive definite")
	}

	var l mat.TriDense
	chol.LTo(&l)

	n, m := g.Dims()

	yw := mat.NewVecDense(n, nil)
	if err := yw.SolveVec(&l, y); err != nil {
		return nil, nil, nil, fmt.Errorf("assoc: whitening trait vector: %w", err)
	}

	gw := mat.NewDense(n, m, nil)
	if err := gw.Solve(&l, g); err != nil {
		return nil, nil, nil, fmt.Errorf("assoc: whitening genotype matrix: %w", err)
	}

	uw := mat.NewVecDense(n, nil)
	if err := uw.SolveVec(&l, ones); err != nil {
		return nil, nil, nil, fmt.Errorf("assoc: whitening intercept: %w", err)
	}

	return yw, gw, uw, nil
}
