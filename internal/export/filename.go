package export

import (
	"fmt"
	"strings"
	"time"
)

// Filename derives the artifact filename from the project name: lowercase,
// every non-alphanumeric character replaced with an underscore, suffixed
// with the current date and the format extension.
func Filename(projectName string, format Format, now time.Time) string {
	var b strings.Builder
	for _, r := range strings.ToLower(projectName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return fmt.Sprintf("%s_export_%s.%s", b.String(), now.Format("2006-01-02"), format)
}
