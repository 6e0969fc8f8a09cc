package domain

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// schemeRegex needs two scheme characters so Windows drives ("C:") never match
	schemeRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]+://`)
	driveRegex  = regexp.MustCompile(`^/[A-Za-z]:`)

	driveRootRegex = regexp.MustCompile(`^[A-Za-z]:[\\/]`)
)

// NormalizeBasePath turns the storage root reported by the host into a plain
// filesystem path. Hosts may hand out resource URLs such as
// "app://local/Users/me/vault?1690000000"; the scheme, authority and query are
// stripped. The result is stable under repeated normalization.
func NormalizeBasePath(raw string) string {
	p := strings.TrimSpace(raw)

	if loc := schemeRegex.FindStringIndex(p); loc != nil {
		rest := p[loc[1]:]
		slash := strings.Index(rest, "/")
		if slash == -1 {
			return ""
		}
		p = rest[slash:]
		if unescaped, err := url.PathUnescape(p); err == nil {
			p = unescaped
		}
	}

	if i := strings.Index(p, "?"); i != -1 {
		p = p[:i]
	}

	if driveRegex.MatchString(p) {
		p = p[1:]
	}

	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}

// ResolveBasePath normalizes raw and requires an absolute result, so composed
// paths never depend on the working directory.
func ResolveBasePath(raw string) (string, error) {
	base := NormalizeBasePath(raw)
	if base == "" || !isAbsolute(base) {
		return "", fmt.Errorf("%w: %q", ErrNoBasePath, raw)
	}
	return base, nil
}

// isAbsolute accepts POSIX and Windows drive roots on every platform
func isAbsolute(p string) bool {
	return filepath.IsAbs(p) || strings.HasPrefix(p, "/") || driveRootRegex.MatchString(p)
}

// ExpandHome replaces a leading "~" or "~/" with home. Other paths, and
// "~user" forms, are returned unchanged.
func ExpandHome(p, home string) string {
	if home == "" || (p != "~" && !strings.HasPrefix(p, "~/")) {
		return p
	}
	return filepath.Join(home, p[1:])
}

// ComposePath joins a vault-relative file path onto the storage root
func ComposePath(basePath, relativeFilePath string) string {
	return filepath.Join(NormalizeBasePath(basePath), filepath.FromSlash(relativeFilePath))
}

// RelativeToBase converts p into a path relative to the storage root, using
// forward slashes like the host does. Relative input is only cleaned.
func RelativeToBase(basePath, p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", ErrNoTargetFile
	}

	rel := filepath.Clean(filepath.FromSlash(p))
	if filepath.IsAbs(rel) {
		var err error
		rel, err = filepath.Rel(NormalizeBasePath(basePath), rel)
		if err != nil {
			return "", fmt.Errorf("failed to get relative path: %w", err)
		}
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideVault, p)
	}
	if rel == "." {
		return "", ErrNoTargetFile
	}

	return filepath.ToSlash(rel), nil
}
