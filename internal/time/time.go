package time

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// layouts accepted for the SSO cache expiresAt field.  Values without a zone
// are treated as UTC.
var expiresAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseExpiresAt parses the expiresAt value of an SSO cache file.  Older
// versions of the AWS CLI append a non-standard "UTC" marker which is removed
// before parsing.
func ParseExpiresAt(t string) (time.Time, error) {
	s := strings.TrimSpace(t)
	s = strings.TrimSpace(strings.TrimSuffix(s, "UTC"))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty expiresAt")
	}

	for _, layout := range expiresAtLayouts {
		if x, err := time.Parse(layout, s); err == nil {
			return x.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse expiresAt: %s", t)
}

// IsExpired returns true if expiresAt is at or before now.  Unparsable
// values are considered expired.
func IsExpired(now time.Time, expiresAt string) bool {
	x, err := ParseExpiresAt(expiresAt)
	if err != nil {
		return true
	}
	return !x.After(now)
}

// Returns the MMm or HHhMMm or 'Expired' if no time remains
func TimeRemain(expires int64, space bool) (string, error) {
	d := time.Until(time.Unix(expires, 0))
	if d <= 0 {
		return "Expired", nil
	}

	s := strings.Replace(d.Truncate(time.Minute).String(), "0s", "", 1)
	if strings.Compare(s, "") == 0 {
		s = "< 1m"
	}

	if space {
		// space between min & hour and minutes.  Add min mark if it is missing
		re := regexp.MustCompile(`\A(\d+)h(\d+)m?\z`)
		s = re.ReplaceAllString(s, "${1}h ${2}m")

		// two spaces for single digit min
		padMin := regexp.MustCompile(`\A(\d+h) (\dm)\z`)
		s = padMin.ReplaceAllString(s, "$1  $2")

		// padd out to 7 chars
		s = fmt.Sprintf("%7s", s)
	}

	// Just return the number of MMm or HHhMMm
	return s, nil
}
