package cache

// KeyVersion is mixed into every key. Bump it when the layout of cached
// values changes so that old entries stop matching.
const KeyVersion = 1

// Keyer derives cache keys.
type Keyer interface {
	// SearchKey returns the key of a search over the input whose canonical
	// document hashes to inputHash.
	SearchKey(inputHash string, opts SearchKeyOpts) string
}

// SearchKeyOpts holds every parameter that changes a search result.
type SearchKeyOpts struct {
	Kind        string `json:"kind"` // "tree", "graph" or a demo name
	Start       string `json:"start,omitempty"`
	Goal        string `json:"goal,omitempty"`
	Suffix      string `json:"suffix,omitempty"`
	Algorithm   string `json:"algorithm"`
	Order       string `json:"order,omitempty"`
	Limit       int    `json:"limit"`
	MaxLimit    int    `json:"max_limit"`
	All         bool   `json:"all,omitempty"`
	StopOnMatch bool   `json:"stop_on_match,omitempty"`
}

// DefaultKeyer hashes the input hash and options together.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SearchKey returns "search:<sha256>".
func (DefaultKeyer) SearchKey(inputHash string, opts SearchKeyOpts) string {
	return hashKey("search", KeyVersion, inputHash, opts)
}
