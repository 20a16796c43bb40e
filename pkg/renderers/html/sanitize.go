package html

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce  sync.Once
	titlePolicy *bluemonday.Policy
	valuePolicy *bluemonday.Policy
)

// policies returns the summary policy (plain text) and the body policy
// (user generated content markup).
func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		titlePolicy = bluemonday.StrictPolicy()
		valuePolicy = bluemonday.UGCPolicy()
	})
	return titlePolicy, valuePolicy
}
