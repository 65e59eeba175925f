// Package directions builds "get directions" deep links for the platform a
// visitor is browsing from.
package directions

import (
	"fmt"
	"regexp"

	"mosque/pkg/geo"
)

// Platform is the family of device asking for directions. It decides which
// maps application the directions link opens.
type Platform int

const (
	Other Platform = iota
	IOS
	Android
)

// String returns the lower case name used in JSON responses.
func (p Platform) String() string {
	switch p {
	case IOS:
		return "ios"
	case Android:
		return "android"
	default:
		return "other"
	}
}

var (
	iosRe     = regexp.MustCompile(`iPad|iPhone|iPod`)
	androidRe = regexp.MustCompile(`Android`)
)

// DetectPlatform classifies a browser user agent.
func DetectPlatform(userAgent string) Platform {
	switch {
	case iosRe.MatchString(userAgent):
		return IOS
	case androidRe.MatchString(userAgent):
		return Android
	default:
		return Other
	}
}

// URL returns the driving directions link to c. Reachability is not checked.
func URL(c geo.Coordinate, p Platform) string {
	if p == IOS {
		return fmt.Sprintf("maps://maps.apple.com/?daddr=%v,%v&dirflg=d", c.Lat, c.Lng)
	}
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%v,%v&travelmode=driving", c.Lat, c.Lng)
}
