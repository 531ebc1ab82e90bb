package stacks

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	defaultPolicyOnce sync.Once
	defaultPolicy     *bluemonday.Policy
)

// DefaultSanitizer returns the policy used for stack content: user generated
// content rules plus table cells, form controls, classes and data attributes.
func DefaultSanitizer() Sanitizer {
	defaultPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowStyling()
		policy.AllowDataAttributes()
		policy.AllowTables()

		policy.AllowElements("div", "span", "button", "label", "input", "select", "option", "i")
		policy.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
		policy.AllowAttrs("type", "name", "value", "placeholder", "disabled", "readonly", "checked").
			OnElements("input", "button", "select", "option")
		policy.AllowAttrs("selected").OnElements("option")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("id").Globally()

		defaultPolicy = policy
	})
	return defaultPolicy
}
