// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryafter

import "time"

// Layouts lists the HTTP date layouts understood by ParseHTTPDate, in
// the order they are tried.
//
// The "GMT" suffix is a literal in each layout, not a zone abbreviation,
// so a date in any other zone does not parse.
var Layouts = []string{
	// IMF-fixdate, the preferred form (RFC 1123).
	"Mon, 02 Jan 2006 15:04:05 GMT",
	// Obsolete RFC 850 form, with a two-digit year.
	"Monday, 02-Jan-06 15:04:05 GMT",
	// Obsolete asctime form. The day of month is space-padded.
	"Mon Jan _2 15:04:05 2006",
}

// ParseHTTPDate parses s as an HTTP date, trying each of Layouts in
// order and returning the first successful result, in UTC.
//
// Parsing is independent of the process locale and time zone. A
// two-digit RFC 850 year is mapped to a century using the time package
// rule: years 69-99 are 1969-1999 and years 00-68 are 2000-2068.
func ParseHTTPDate(s string) (time.Time, bool) {
	for _, layout := range Layouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
