// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"encoding/hex"
	"strings"
)

// decodeContentText pulls the shown text out of a decoded PDF page content
// stream. It scans for the text-showing operators (Tj, TJ, ' and ") and
// collects their string operands; the text-positioning operators Td, TD
// and T* become line breaks. Glyph positioning, fonts and encodings beyond
// simple string literals are ignored: the output is meant for knowledge-base
// text, not layout reconstruction.
func decodeContentText(stream []byte) string {
	var out strings.Builder
	var operands []string
	var token []byte

	flushOperator := func() {
		op := string(token)
		token = token[:0]

		switch op {
		case "Tj", "'", "\"":
			if len(operands) > 0 {
				out.WriteString(operands[len(operands)-1])
			}
			if op != "Tj" {
				// ' and " move to the next line before showing
				out.WriteByte('\n')
			}
		case "TJ":
			for _, s := range operands {
				out.WriteString(s)
			}
		case "Td", "TD", "T*":
			out.WriteByte('\n')
		}
		operands = operands[:0]
	}

	i := 0
	for i < len(stream) {
		c := stream[i]

		switch {
		case c == '(':
			if len(token) > 0 {
				flushOperator()
			}
			s, next := parseLiteralString(stream, i)
			operands = append(operands, s)
			i = next

		case c == '<' && i+1 < len(stream) && stream[i+1] != '<':
			if len(token) > 0 {
				flushOperator()
			}
			s, next := parseHexString(stream, i)
			operands = append(operands, s)
			i = next

		case c == '<': // dictionary start <<
			if len(token) > 0 {
				flushOperator()
			}
			i += 2

		case isRegular(c):
			token = append(token, c)
			i++

		default:
			// Delimiter or whitespace terminates any pending operator
			if len(token) > 0 {
				flushOperator()
			}
			if c == ']' || c == '[' {
				// Array brackets only group operands; keep them
			}
			i++
		}
	}
	if len(token) > 0 {
		flushOperator()
	}

	return out.String()
}

// isRegular reports whether c can be part of an operator token.
func isRegular(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\x00',
		'(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return false
	}
	// Numeric operands are skipped: operators never start with a digit,
	// sign or period, so dropping those tokens loses nothing.
	if c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.' {
		return false
	}
	// ' and " are text-showing operators despite being delimiters elsewhere
	return true
}

// parseLiteralString parses a PDF literal string starting at the opening
// parenthesis. Returns the decoded string and the index after the closing
// parenthesis. Handles nested parentheses, escape sequences and octal codes.
func parseLiteralString(stream []byte, start int) (string, int) {
	var b strings.Builder
	depth := 0
	i := start

	for i < len(stream) {
		c := stream[i]

		switch c {
		case '(':
			depth++
			if depth > 1 {
				b.WriteByte(c)
			}
			i++

		case ')':
			depth--
			if depth == 0 {
				return b.String(), i + 1
			}
			b.WriteByte(c)
			i++

		case '\\':
			if i+1 >= len(stream) {
				return b.String(), i + 1
			}
			esc := stream[i+1]
			switch esc {
			case 'n':
				b.WriteByte('\n')
				i += 2
			case 'r':
				b.WriteByte('\r')
				i += 2
			case 't':
				b.WriteByte('\t')
				i += 2
			case 'b', 'f':
				i += 2
			case '\n':
				// Line continuation
				i += 2
			case '(', ')', '\\':
				b.WriteByte(esc)
				i += 2
			default:
				if esc >= '0' && esc <= '7' {
					// Up to three octal digits
					val := 0
					j := i + 1
					for j < len(stream) && j < i+4 && stream[j] >= '0' && stream[j] <= '7' {
						val = val*8 + int(stream[j]-'0')
						j++
					}
					b.WriteByte(byte(val))
					i = j
				} else {
					b.WriteByte(esc)
					i += 2
				}
			}

		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String(), i
}

// parseHexString parses a PDF hex string starting at '<'. Returns the
// decoded string and the index after the closing '>'. An odd final digit
// is treated as if followed by zero.
func parseHexString(stream []byte, start int) (string, int) {
	end := start + 1
	for end < len(stream) && stream[end] != '>' {
		end++
	}

	var digits []byte
	for _, c := range stream[start+1 : end] {
		if c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F' {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	decoded := make([]byte, hex.DecodedLen(len(digits)))
	if _, err := hex.Decode(decoded, digits); err != nil {
		return "", end + 1
	}

	if end < len(stream) {
		end++ // consume '>'
	}
	return string(decoded), end
}
