package forecasting

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"

	"marketmood/internal/domain/forecast"
	"marketmood/pkg/errors"
)

// arimaProducer fits an ARIMA(1,1,1) model: the series is first-differenced
// once and the AR(1) and MA(1) coefficients are estimated with the
// Hannan-Rissanen two-step procedure.
type arimaProducer struct {
	minObservations int
}

func newARIMAProducer(minObservations int) *arimaProducer {
	return &arimaProducer{minObservations: minObservations}
}

func (p *arimaProducer) Name() string { return forecast.ModelARIMA }

func (p *arimaProducer) Produce(ctx context.Context, series forecast.DailySeries, horizon int) (forecast.Result, error) {
	values := series.Values()
	n := len(values)
	if n < p.minObservations {
		return forecast.Result{}, errTooShort(forecast.ModelARIMA, p.minObservations, n)
	}

	diffs := make([]float64, n-1)
	for i := range diffs {
		diffs[i] = values[i+1] - values[i]
	}

	phi, theta, ok := fitARMA11(diffs)
	if !ok {
		return forecast.Result{}, errors.Wrap(errors.ErrProducerUnavailable, "arima fit failed")
	}

	resid := arma11Residuals(diffs, phi, theta)

	m := len(diffs)
	obs := float64(m - 1)
	var sumSq float64
	for _, e := range resid[1:] {
		sumSq += e * e
	}
	sigma2 := sumSq / obs
	if !(sigma2 > 0) || math.IsInf(sigma2, 0) {
		return forecast.Result{}, errors.Wrap(errors.ErrProducerUnavailable, "arima fit degenerate")
	}

	// Gaussian log-likelihood of the residuals
	logLik := -0.5 * obs * (math.Log(2*math.Pi*sigma2) + 1)
	const k = 3 // phi, theta, sigma^2
	aic := -2*logLik + 2*k
	bic := -2*logLik + k*math.Log(obs)

	// Recursive forecasts on the differenced scale. The MA term only
	// contributes to the first step.
	fdiffs := make([]float64, horizon)
	fdiffs[0] = phi*diffs[m-1] + theta*resid[m-1]
	for h := 1; h < horizon; h++ {
		fdiffs[h] = phi * fdiffs[h-1]
	}

	// Psi weights of the integrated process accumulate the ARMA psi
	// weights psi_j = (phi+theta)*phi^(j-1)
	cumPsi := make([]float64, horizon)
	cumPsi[0] = 1
	psi := phi + theta
	for j := 1; j < horizon; j++ {
		cumPsi[j] = cumPsi[j-1] + psi
		psi *= phi
	}

	dates := forecastDates(series, horizon)
	points := make([]forecast.Point, horizon)
	level := values[n-1]
	varSum := 0.0
	for h := 0; h < horizon; h++ {
		level += fdiffs[h]
		varSum += cumPsi[h] * cumPsi[h]
		interval := 1.96 * math.Sqrt(sigma2*varSum)

		points[h] = clampPoint(forecast.Point{
			Date:  dates[h],
			Value: level,
			Lower: level - interval,
			Upper: level + interval,
		})
	}

	return forecast.Result{
		Model:  forecast.ModelARIMA,
		Points: points,
		Params: map[string]interface{}{
			"order": "(1,1,1)",
			"aic":   aic,
			"bic":   bic,
		},
	}, nil
}

// fitARMA11 estimates ARMA(1,1) coefficients on a differenced series.
// Step one proxies the innovations with AR(1) residuals from the lag-1
// autocorrelation; step two regresses each value on its lag and the
// lagged innovation proxy.
func fitARMA11(diffs []float64) (phi, theta float64, ok bool) {
	m := len(diffs)
	if m < 3 {
		return 0, 0, false
	}

	var num, den float64
	for t := 1; t < m; t++ {
		num += diffs[t] * diffs[t-1]
	}
	for _, d := range diffs {
		den += d * d
	}
	if den == 0 {
		return 0, 0, false
	}
	phi0 := num / den

	proxy := make([]float64, m)
	for t := 1; t < m; t++ {
		proxy[t] = diffs[t] - phi0*diffs[t-1]
	}

	rows := m - 1
	x := mat.NewDense(rows, 2, nil)
	y := mat.NewVecDense(rows, nil)
	for t := 1; t < m; t++ {
		x.Set(t-1, 0, diffs[t-1])
		x.Set(t-1, 1, proxy[t-1])
		y.SetVec(t-1, diffs[t])
	}

	var coef mat.VecDense
	if err := coef.SolveVec(x, y); err != nil {
		return 0, 0, false
	}

	phi = clampCoef(coef.AtVec(0))
	theta = clampCoef(coef.AtVec(1))
	if math.IsNaN(phi) || math.IsNaN(theta) {
		return 0, 0, false
	}
	return phi, theta, true
}

// arma11Residuals recovers the innovation sequence under the fitted
// coefficients, anchoring the recursion at zero
func arma11Residuals(diffs []float64, phi, theta float64) []float64 {
	resid := make([]float64, len(diffs))
	for t := 1; t < len(diffs); t++ {
		resid[t] = diffs[t] - phi*diffs[t-1] - theta*resid[t-1]
	}
	return resid
}

// clampCoef keeps a coefficient inside the stationarity/invertibility region
func clampCoef(c float64) float64 {
	const limit = 0.99
	if c > limit {
		return limit
	}
	if c < -limit {
		return -limit
	}
	return c
}
