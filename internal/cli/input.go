package cli

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/seabook/internal/common"
	"github.com/dmitrijs2005/seabook/internal/models"
)

// splitLine splits a command line on blanks. Double quotes group words, so
// portOfRegistry="Panama City" is one token.
func splitLine(line string) ([]string, error) {
	var (
		out     []string
		cur     strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t'):
			if started {
				out = append(out, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if quoted {
		return nil, errors.New("unterminated quote")
	}
	if started {
		out = append(out, cur.String())
	}
	return out, nil
}

// plainNumber matches decimal numbers without leading zeros or exponents, so
// identifiers such as an IMO typed as 0123456 stay text.
var plainNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// parseValue turns a raw field value into what the section maps store:
// true/false become booleans, plain decimal numbers become float64,
// everything else stays a string. An empty value clears the field.
func parseValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true", "yes":
		return true
	case "false", "no":
		return false
	}
	if plainNumber.MatchString(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	return raw
}

// parseFields parses name=value tokens.
func parseFields(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrInvalidField)
	}
	out := make(map[string]any, len(args))
	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", common.ErrInvalidField, a)
		}
		out[name] = parseValue(value)
	}
	return out, nil
}

// parsePeriod parses name=value tokens into a service period patch. Values
// are kept as text.
func parsePeriod(args []string) (models.ServicePeriodPatch, error) {
	var patch models.ServicePeriodPatch
	if len(args) == 0 {
		return patch, fmt.Errorf("%w: nothing to update", common.ErrInvalidField)
	}
	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			return patch, fmt.Errorf("%w: %q", common.ErrInvalidField, a)
		}
		v := value
		switch strings.TrimSpace(name) {
		case "signOnDate":
			patch.SignOnDate = &v
		case "signOnPort":
			patch.SignOnPort = &v
		case "signOffDate":
			patch.SignOffDate = &v
		case "signOffPort":
			patch.SignOffPort = &v
		default:
			return patch, fmt.Errorf("%w: unknown service period field %q", common.ErrInvalidField, name)
		}
	}
	return patch, nil
}

// sectionKey resolves a section name typed by the user.
func sectionKey(s string) (models.SectionKey, error) {
	k := models.SectionKey(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %s", common.ErrUnknownSection, s)
	}
	return k, nil
}
