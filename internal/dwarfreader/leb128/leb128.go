// This file is part of dwlocstat.
//
// dwlocstat is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dwlocstat is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dwlocstat.  If not, see <https://www.gnu.org/licenses/>.

// Package leb128 decodes the variable-length integer encodings used
// throughout DWARF expressions and location lists.
package leb128

// DecodeULEB128 decodes an unsigned LEB128 value, as described on page 218
// of the "DWARF4 Standard", figure 46.
//
// Returns the decoded value and the number of bytes consumed from
// encoded. Returns (0, 0) if encoded runs out before a terminating byte
// (high bit clear) is found.
func DecodeULEB128(encoded []uint8) (uint64, int) {
	var result uint64
	var shift uint

	for n, b := range encoded {
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, n + 1
		}
		shift += 7
	}

	return 0, 0
}

// DecodeSLEB128 decodes a signed LEB128 value, as described on page 218 of
// the "DWARF4 Standard", figure 47.
//
// Returns the decoded value and the number of bytes consumed from
// encoded. Returns (0, 0) if encoded runs out before a terminating byte
// is found.
func DecodeSLEB128(encoded []uint8) (int64, int) {
	const size = 64

	var result int64
	var shift uint
	var last uint8

	for n, b := range encoded {
		last = b
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			if shift < size && last&0x40 != 0 {
				result |= -1 << shift
			}
			return result, n + 1
		}
	}

	return 0, 0
}
