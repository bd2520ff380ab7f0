// Interpolate `${foo}` style strings.

package main

import (
	"strings"

	"github.com/pkg/errors"
)

/*
 * str : (s)*
 *     ;
 * s : (* empty *)
 *   | <literal>
 *   | $$
 *   | ${<literal>}
 *   ;
 */

// Interpolate expands `${name}` in `s` using `dict`, recursively.
// Unknown names are errors.
func Interpolate(s string, dict map[string]string) (string, error) {
	return interpolate(s, dict, true, nil)
}

// LenientInterpolate is `Interpolate` leaving unknown `${name}` untouched.
func LenientInterpolate(s string, dict map[string]string) (string, error) {
	return interpolate(s, dict, false, nil)
}

func interpolate(s string, dict map[string]string, strict bool, active []string) (string, error) {
	if strings.IndexByte(s, '$') < 0 {
		return s, nil
	}
	var b strings.Builder
	for 0 < len(s) {
		idx := strings.IndexByte(s, '$')
		if idx < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:idx])
		s = s[idx:]
		if len(s) == 1 {
			// Trailing `$`
			b.WriteByte('$')
			break
		}
		switch s[1] {
		case '$':
			b.WriteByte('$')
			s = s[2:]
		case '{':
			end := strings.IndexByte(s, '}')
			if end < 0 {
				return "", errors.Errorf("unterminated \"${\" in \"%s\"", s)
			}
			name := s[2:end]
			s = s[end+1:]
			value, ok := dict[name]
			if !ok {
				if strict {
					return "", errors.Errorf("variable \"%s\" is not defined", name)
				}
				b.WriteString("${" + name + "}")
				continue
			}
			for _, a := range active {
				if a == name {
					return "", errors.Errorf("variable \"%s\" refers to itself", name)
				}
			}
			expanded, err := interpolate(value, dict, strict, append(active, name))
			if err != nil {
				return "", errors.Wrapf(err, "failed to expand \"%s\"", name)
			}
			b.WriteString(expanded)
		default:
			return "", errors.Errorf("invalid \"$\" sequence in \"%s\"", s)
		}
	}
	return b.String(), nil
}
