// Package validate holds the identity format rules this core consumes from
// the outside world. Uploader and reactor names are opaque display names, not
// authenticated principals; only their shape is checked here.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"ruang-foto/internal/domain"
)

// Display names: 2-50 runes of letters (any script), digits, dot, underscore,
// hyphen. Mirrors the format accepted by the room collaborator.
var userNameRe = regexp.MustCompile(`^[\p{L}\p{N}._-]{2,50}$`)

func UserName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: user name is required", domain.ErrValidation)
	}
	if !userNameRe.MatchString(name) {
		return "", fmt.Errorf("%w: user name must be 2-50 characters of letters, digits, '.', '_' or '-'", domain.ErrValidation)
	}
	return name, nil
}
