// Package compare manages the saved set of cost results used to compare
// configurations side by side.
package compare

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/agentcost/internal/model"
)

// BaseConfiguration labels a result with no optional stages enabled.
const BaseConfiguration = "Base configuration"

// Label builds the comparison label for a result's assumptions. Results that
// differ in model, options, traffic or lengths get different labels.
func Label(a model.Assumptions) string {
	opts := BaseConfiguration
	if len(a.EnabledOptions) > 0 {
		opts = strings.Join(a.EnabledOptions, "+")
	}
	return fmt.Sprintf("%s - %s (%dreq, in %s/out %s chars)",
		a.ModelName, opts, a.DailyRequests, groupDigits(a.MaxInputChars), groupDigits(a.MaxOutputChars))
}

func groupDigits(n int) string {
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
