package cache

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey returns the key for the answer of a run over input with opts.
	ResultKey(inputHash string, opts ResultKeyOpts) string
}

// ResultKeyOpts lists everything besides the input that changes a result.
type ResultKeyOpts struct {
	Mode string `json:"mode"`
}

// DefaultKeyer produces "result:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey hashes the input hash together with the options.
func (DefaultKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	return hashKey("result", inputHash, opts)
}
