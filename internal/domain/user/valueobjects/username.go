package valueobjects

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 64
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.\-]*$`)

type Username struct {
	value string
}

func NewUsername(value string) (*Username, error) {
	value = strings.TrimSpace(value)
	if len(value) < minUsernameLength || len(value) > maxUsernameLength {
		return nil, fmt.Errorf("username must be between %d and %d characters", minUsernameLength, maxUsernameLength)
	}
	if !usernamePattern.MatchString(value) {
		return nil, fmt.Errorf("username may contain only letters, digits, dot, dash and underscore")
	}
	return &Username{value: value}, nil
}

func (u *Username) String() string {
	return u.value
}

func (u *Username) Equals(other *Username) bool {
	if other == nil {
		return false
	}
	return u.value == other.value
}
