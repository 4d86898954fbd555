package orchestrator

import (
	"fmt"
	"regexp"
	"strings"
)

// tagNameRegex matches valid git tag names built from safe characters.
var tagNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._/\-]+$`)

// ValidateTagName validates a git tag name.
func ValidateTagName(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag name cannot be empty")
	}
	if len(tag) > 255 {
		return fmt.Errorf("tag name too long: %d characters (max: 255)", len(tag))
	}
	if strings.Contains(tag, "..") {
		return fmt.Errorf("tag name cannot contain consecutive dots: %s", tag)
	}
	if !tagNameRegex.MatchString(tag) {
		return fmt.Errorf("invalid tag name format: %s", tag)
	}
	return nil
}
