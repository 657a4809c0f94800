// Package bloom provides probabilistic URL deduplication for article
// lists and discovery streams.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultCapacity sizes a filter for a typical batch run. Public
// account archives rarely exceed a few thousand articles.
const DefaultCapacity = 100000

// DefaultFalsePositiveRate keeps wrongly dropped URLs vanishingly
// rare at batch scale. A false positive silently skips an article, so
// the rate is kept at one in a thousand.
const DefaultFalsePositiveRate = 0.001

// Filter wraps a Bloom filter for URL deduplication. False positives
// are possible; false negatives are not.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewDefaultFilter creates a filter with the default capacity and
// false positive rate.
func NewDefaultFilter() *Filter {
	return NewFilter(DefaultCapacity, DefaultFalsePositiveRate)
}

// Seen reports whether url was recorded before, and records it. The
// first call for a URL returns false; later calls return true.
func (f *Filter) Seen(url string) bool {
	return f.f.TestAndAddString(url)
}

// Add records a URL without testing it.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might have been recorded.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of recorded URLs.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
