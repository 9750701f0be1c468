package jsonschema

import (
	"strconv"
	"strings"
)

// Formats is the registry DefaultFormatChecker consults (spec §4.5). It
// covers exactly the built-in set spec §4.5 names — date-time, date,
// time, email, ipv4, hostname, uuid — not the broader Draft 2020-12
// format vocabulary (duration, uri-template, json-pointer, regex, ...).
// A schema naming a format outside this set falls through
// DefaultFormatChecker's unknown-format rule and always passes; callers
// needing more formats supply their own FormatChecker via
// Validator.SetFormatChecker.
var Formats = map[string]func(string) bool{
	"date-time": IsDateTime,
	"date":      IsDate,
	"time":      IsTime,
	"email":     IsEmail,
	"ipv4":      IsIPv4,
	"hostname":  IsHostname,
	"uuid":      IsUUID,
}

// IsDate reports whether s is a full-date per RFC 3339 §5.6
// (yyyy-mm-dd, with a real calendar day for that month/year).
func IsDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	year, ok := digits(s[0:4])
	if !ok {
		return false
	}
	month, ok := digits(s[5:7])
	if !ok || month < 1 || month > 12 {
		return false
	}
	day, ok := digits(s[8:10])
	if !ok || day < 1 || day > daysInMonth(year, month) {
		return false
	}
	return true
}

// IsTime reports whether s is a full-time per RFC 3339 §5.6
// (hh:mm:ss, optional fractional seconds, and a 'Z' or numeric offset).
func IsTime(s string) bool {
	if len(s) < 9 || s[2] != ':' || s[5] != ':' {
		return false
	}
	if _, ok := digits(s[0:2]); !ok {
		return false
	}
	hour, _ := digits(s[0:2])
	minute, ok := digits(s[3:5])
	if !ok || hour > 23 || minute > 59 {
		return false
	}
	second, ok := digits(s[6:8])
	if !ok || second > 60 { // 60 tolerates a leap second
		return false
	}
	rest := s[8:]

	if len(rest) > 0 && rest[0] == '.' {
		rest = rest[1:]
		n := 0
		for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
			n++
		}
		if n == 0 {
			return false
		}
		rest = rest[n:]
	}

	if rest == "Z" || rest == "z" {
		return true
	}
	if len(rest) != 6 || (rest[0] != '+' && rest[0] != '-') || rest[3] != ':' {
		return false
	}
	offHour, ok := digits(rest[1:3])
	if !ok || offHour > 23 {
		return false
	}
	offMinute, ok := digits(rest[4:6])
	return ok && offMinute <= 59
}

// IsDateTime reports whether s is a date-time per RFC 3339 §5.6: a full
// date, the separator 'T' or 't', and a full time.
func IsDateTime(s string) bool {
	if len(s) < 20 {
		return false
	}
	if s[10] != 'T' && s[10] != 't' {
		return false
	}
	return IsDate(s[:10]) && IsTime(s[11:])
}

// IsEmail reports whether s has a single '@' separating a non-empty
// local part (at most 64 characters) from a domain that passes
// IsHostname and contains at least one '.' (spec §4.5).
func IsEmail(s string) bool {
	if len(s) == 0 || len(s) > 254 {
		return false
	}
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	if strings.IndexByte(s[at+1:], '@') != -1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if len(local) > 64 || !isEmailLocal(local) {
		return false
	}
	return strings.ContainsRune(domain, '.') && IsHostname(domain)
}

func isEmailLocal(local string) bool {
	for _, c := range local {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune(".!#$%&'*+-/=?^_`{|}~", c):
		default:
			return false
		}
	}
	return true
}

// IsIPv4 reports whether s is four decimal octets 0-255 in canonical
// textual form (no leading zeroes, spec §4.5).
func IsIPv4(s string) bool {
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return false
	}
	for _, o := range octets {
		if len(o) == 0 || len(o) > 3 {
			return false
		}
		if len(o) > 1 && o[0] == '0' {
			return false
		}
		n, err := strconv.Atoi(o)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

// IsHostname reports whether s matches the RFC 1123 character class,
// is at most 253 characters, and has no label starting or ending with a
// hyphen (spec §4.5).
func IsHostname(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, c := range label {
			ok := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-'
			if !ok {
				return false
			}
		}
	}
	return true
}

// IsUUID reports whether s is 36 characters of hex digits and hyphens,
// with hyphens at positions 8, 13, 18, and 23 (spec §4.5).
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, c := range s {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
			if !isHex {
				return false
			}
		}
	}
	return true
}

func digits(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
