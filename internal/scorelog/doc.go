// Package scorelog reads and writes scorevideo behavior logs.
//
// A scorevideo log is a plain text file made of a free-form header followed
// by titled sections. Each section title is followed by a dashed rule; the
// RAW LOG, FULL LOG and MARKS sections additionally carry a column title line
// between two rules. A section body runs up to the next rule:
//
//	FULL LOG
//	------------------------------------------
//	    frame|      time|description             |subject
//	------------------------------------------
//	      120  00:04.00  Pot entry                 either
//	------------------------------------------
//
// Two representations are provided:
//   - RawLog keeps every section as literal lines, so a log can be edited
//     and written back without disturbing lines it does not touch.
//   - Log holds the parsed FULL LOG behaviors and MARKS marks.
//
// Times use the scorevideo notation [-]MM:SS.CC (minutes unbounded,
// hundredths of a second). Marks carry signed frame and time offsets from
// the start of their own video; behaviors are always non-negative.
//
// All text is NFC normalized on read.
package scorelog
