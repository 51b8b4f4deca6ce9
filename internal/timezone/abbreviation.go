package timezone

import (
	"strings"
	"time"
	"unicode"
)

var canonicalAbbreviations = map[string]string{
	"UTC":                 "UTC",
	"Etc/UTC":             "UTC",
	"America/New_York":    "ET",
	"America/Chicago":     "CT",
	"America/Denver":      "MT",
	"America/Phoenix":     "MST",
	"America/Los_Angeles": "PT",
	"America/Anchorage":   "AKT",
	"Pacific/Honolulu":    "HST",
	"Europe/London":       "UK",
	"Europe/Paris":        "CET",
	"Europe/Berlin":       "CET",
	"Asia/Manila":         "PHT",
	"Asia/Kolkata":        "IST",
	"Asia/Tokyo":          "JST",
	"Asia/Singapore":      "SGT",
	"Australia/Sydney":    "AET",
}

var cityAbbreviations = map[string]string{
	"new york":     "ET",
	"detroit":      "ET",
	"toronto":      "ET",
	"indianapolis": "ET",
	"chicago":      "CT",
	"winnipeg":     "CT",
	"mexico city":  "CST",
	"denver":       "MT",
	"edmonton":     "MT",
	"boise":        "MT",
	"phoenix":      "MST",
	"los angeles":  "PT",
	"vancouver":    "PT",
	"tijuana":      "PT",
	"manila":       "PHT",
	"cebu":         "PHT",
	"london":       "UK",
	"dublin":       "IST",
	"calcutta":     "IST",
	"bogota":       "COT",
	"lima":         "PET",
}

var knownAbbreviations = map[string]bool{
	"UTC": true, "GMT": true, "BST": true, "IST": true, "CET": true, "CEST": true,
	"EET": true, "EEST": true, "WET": true, "WEST": true, "MSK": true,
	"EST": true, "EDT": true, "CST": true, "CDT": true, "MST": true, "MDT": true,
	"PST": true, "PDT": true, "AKST": true, "AKDT": true, "HST": true, "AST": true, "ADT": true,
	"JST": true, "KST": true, "PHT": true, "SGT": true, "HKT": true, "WIB": true,
	"AEST": true, "AEDT": true, "ACST": true, "AWST": true, "NZST": true, "NZDT": true,
}

// Abbreviation derives a short label for display at instant at. The chain is
// canonical table, city token, tz database short name, display name
// initials, then "UTC".
func Abbreviation(z Zone, at time.Time) string {
	if abbr, ok := canonicalAbbreviations[z.CanonicalZone]; ok {
		return abbr
	}
	if abbr := cityAbbreviation(z.CanonicalZone); abbr != "" {
		return abbr
	}
	if abbr := databaseAbbreviation(z.CanonicalZone, at); abbr != "" {
		return abbr
	}
	if abbr := initials(z.DisplayName); abbr != "" {
		return abbr
	}
	return "UTC"
}

func cityAbbreviation(canonical string) string {
	if canonical == "" {
		return ""
	}
	parts := strings.Split(canonical, "/")
	city := strings.ToLower(strings.ReplaceAll(parts[len(parts)-1], "_", " "))
	return cityAbbreviations[city]
}

func databaseAbbreviation(canonical string, at time.Time) string {
	if canonical == "" {
		return ""
	}
	loc, err := time.LoadLocation(canonical)
	if err != nil {
		return ""
	}
	name, _ := at.In(loc).Zone()
	name = strings.ToUpper(strings.TrimSpace(name))
	if knownAbbreviations[name] {
		return name
	}
	return ""
}

func initials(display string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(display, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' || r == '/'
	}) {
		r := []rune(word)[0]
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// FormatLocal renders a UTC instant in the zone, suffixed with its
// abbreviation. Unknown zones render in UTC.
func FormatLocal(utc time.Time, z Zone) string {
	return utc.In(z.Location()).Format("2006-01-02 15:04") + " " + Abbreviation(z, utc)
}
