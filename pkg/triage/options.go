package triage

type options struct {
	confidenceThreshold float64
}

// Option configures a Triage instance.
type Option func(*options)

// WithConfidenceThreshold sets the minimum cosine similarity for a format
// prediction. Below this threshold, blobs resolve to Unknown. Default: 0.5.
func WithConfidenceThreshold(t float64) Option {
	return func(o *options) {
		o.confidenceThreshold = t
	}
}

func defaultOptions() options {
	return options{
		confidenceThreshold: 0.5,
	}
}
