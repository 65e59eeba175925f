package geo

import "strings"

// OtherDistrict is assigned to places whose district is unknown.
const OtherDistrict = "Other"

var districts = []string{
	"Bagerhat", "Bandarban", "Barguna", "Barishal", "Bhola", "Bogura", "Brahmanbaria",
	"Chandpur", "Chapainawabganj", "Chattogram", "Chuadanga", "Cox's Bazar", "Cumilla",
	"Dhaka", "Dinajpur",
	"Faridpur", "Feni",
	"Gaibandha", "Gazipur", "Gopalganj",
	"Habiganj",
	"Jamalpur", "Jashore", "Jhalokati", "Jhenaidah", "Joypurhat",
	"Khagrachhari", "Khulna", "Kishoreganj", "Kurigram", "Kushtia",
	"Lakshmipur", "Lalmonirhat",
	"Madaripur", "Magura", "Manikganj", "Meherpur", "Moulvibazar", "Munshiganj", "Mymensingh",
	"Naogaon", "Narail", "Narayanganj", "Narsingdi", "Natore", "Netrokona", "Nilphamari", "Noakhali",
	"Pabna", "Panchagarh", "Patuakhali", "Pirojpur",
	"Rajbari", "Rajshahi", "Rangamati", "Rangpur",
	"Satkhira", "Shariatpur", "Sherpur", "Sirajganj", "Sunamganj", "Sylhet",
	"Tangail", "Thakurgaon",
}

// Older romanisations still common in datasets and geocoder output.
var aliases = map[string]string{
	"barisal":     "Barishal",
	"bogra":       "Bogura",
	"chittagong":  "Chattogram",
	"comilla":     "Cumilla",
	"jessore":     "Jashore",
	"nawabganj":   "Chapainawabganj",
	"netrakona":   "Netrokona",
	"maulvibazar": "Moulvibazar",
	"dacca":       "Dhaka",
}

// Districts returns the known district names in alphabetical order.
func Districts() []string {
	out := make([]string, len(districts))
	copy(out, districts)
	return out
}

func IsDistrict(place string) bool {
	_, ok := lookupDistrict(place)
	return ok
}

// NormalizeDistrict returns the canonical spelling of a known district, the
// trimmed input for unknown names and OtherDistrict for blank input.
func NormalizeDistrict(place string) string {
	place = strings.TrimSpace(place)
	if place == "" {
		return OtherDistrict
	}
	if d, ok := lookupDistrict(place); ok {
		return d
	}
	return place
}

// ExtractDistrict scans a comma separated address such as a geocoder
// display name and returns the last component naming a known district.
func ExtractDistrict(text string) string {
	parts := strings.Split(text, ",")
	for i := len(parts) - 1; i >= 0; i-- {
		candidate := strings.TrimSpace(parts[i])
		candidate = strings.TrimSuffix(candidate, " District")
		candidate = strings.TrimSuffix(candidate, " Division")
		if d, ok := lookupDistrict(candidate); ok {
			return d
		}
	}
	return ""
}

func lookupDistrict(place string) (string, bool) {
	place = strings.TrimSpace(place)
	for _, d := range districts {
		if strings.EqualFold(d, place) {
			return d, true
		}
	}
	if d, ok := aliases[strings.ToLower(place)]; ok {
		return d, true
	}
	return "", false
}
