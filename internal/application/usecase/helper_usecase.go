// internal/application/usecase/helper_usecase.go
package usecase

import "strings"

// maskID shortens identifiers for logs.
func maskID(s string) string {
	t := strings.TrimSpace(s)
	if len(t) <= 10 {
		return t
	}
	return t[:4] + "***" + t[len(t)-4:]
}
