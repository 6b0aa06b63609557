package scoring

// rsi computes the final Wilder-smoothed RSI value over closes ordered
// oldest first. The second return is false when the RSI is undefined
// (zero average loss over the window).
func rsi(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period+1 {
		return 0, false
	}

	n := len(closes)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	// Seed with a simple average, then Wilder smoothing.
	avgGain := mean(gains[1 : period+1])
	avgLoss := mean(losses[1 : period+1])
	for i := period + 1; i < n; i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
	}

	if avgLoss == 0 {
		return 0, false
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs)), true
}

// sma computes the simple moving average of the first n values.
func sma(values []float64, n int) float64 {
	if n <= 0 || len(values) < n {
		return 0
	}
	return mean(values[:n])
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
