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

// Package dwarfreader is the DWARF-reader contract: opening an
// ELF object, walking its compile units and DIEs, and resolving attributes,
// locations and location lists. It is a thin, read-only layer over the
// standard library's debug/elf and debug/dwarf packages, extended with the
// location-list and location-expression decoding those packages don't
// provide on their own.
package dwarfreader

import (
	"debug/dwarf"
	"debug/elf"
	"encoding/binary"
	"fmt"
)

// Context is an opened ELF object and its parsed DWARF data, plus the bits
// of ELF header state (address size, byte order) the location-list and
// expression decoders need.
type Context struct {
	ef   *elf.File
	dwrf *dwarf.Data

	byteOrder binary.ByteOrder
	addrSize  int
}

// Open opens path as an ELF object and extracts its DWARF data. Returns an
// error if the file has no DWARF sections at all.
func Open(path string) (*Context, error) {
	ef, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open ELF file %s: %w", path, err)
	}

	dwrf, err := ef.DWARF()
	if err != nil {
		ef.Close()
		return nil, fmt.Errorf("no DWARF data in %s: %w", path, err)
	}

	addrSize := 4
	if ef.Class == elf.ELFCLASS64 {
		addrSize = 8
	}

	return &Context{
		ef:        ef,
		dwrf:      dwrf,
		byteOrder: ef.ByteOrder,
		addrSize:  addrSize,
	}, nil
}

// Close releases the underlying ELF file handle.
func (c *Context) Close() error {
	return c.ef.Close()
}

// AddrSize returns the target's address size in bytes (4 or 8).
func (c *Context) AddrSize() int {
	return c.addrSize
}

// section returns the raw bytes of an ELF section, or nil if it isn't
// present (e.g. a binary with a .debug_loc but no .debug_loclists).
func (c *Context) section(name string) []byte {
	sec := c.ef.Section(name)
	if sec == nil {
		return nil
	}
	data, err := sec.Data()
	if err != nil {
		return nil
	}
	return data
}

// entryAt seeks to and reads the single entry at the given absolute
// .debug_info offset, used to follow DW_AT_specification,
// DW_AT_abstract_origin and DW_OP_{GNU_,}implicit_pointer references.
func (c *Context) entryAt(off dwarf.Offset) (*dwarf.Entry, error) {
	r := c.dwrf.Reader()
	r.Seek(off)
	e, err := r.Next()
	if err != nil {
		return nil, fmt.Errorf("reading entry at offset %d: %w", off, err)
	}
	if e == nil {
		return nil, fmt.Errorf("no entry at offset %d", off)
	}
	return e, nil
}
