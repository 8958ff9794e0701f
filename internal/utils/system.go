package utils

import (
	"go/token"
	"os/user"
	"regexp"
	"strings"
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

var nonPackageChars = regexp.MustCompile(`[^a-z0-9_]`)

// SanitizePackageName turns a directory name into a usable Go package name.
func SanitizePackageName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = nonPackageChars.ReplaceAllString(name, "")

	if name == "" {
		return "secrets"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	if token.IsKeyword(name) {
		name += "_"
	}
	return name
}

// IsIdentifier reports whether name can be declared as a Go identifier.
func IsIdentifier(name string) bool {
	return token.IsIdentifier(name)
}
