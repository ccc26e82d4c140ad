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

package dwarfreader

import (
	"fmt"

	"github.com/jetsetilly/dwlocstat/internal/dwarfreader/leb128"
)

// Opcode identifies a DW_OP_* operator.
type Opcode byte

// the subset of DW_OP_* codes the coverage analyser inspects directly. all
// other opcodes are still decoded (for their length, so the expression
// stream can be walked) but carry no special meaning to the analyser.
const (
	OpAddr              Opcode = 0x03
	OpBitPiece           Opcode = 0x9d
	OpPiece              Opcode = 0x93
	OpImplicitValue      Opcode = 0x9e
	OpStackValue         Opcode = 0x9f
	OpImplicitPointerStd Opcode = 0xa0
	OpEntryValueStd      Opcode = 0xa3
	OpGNUImplicitPointer Opcode = 0xf2
	OpGNUEntryValue      Opcode = 0xf3
)

// Op is one decoded operator of a DWARF location expression. Only the
// fields relevant to the operator's Code are meaningful; this is a shape
// decoder, not a stack evaluator -- it never computes a runtime value.
type Op struct {
	Code Opcode
	Name string

	// Size is the DW_OP_piece/DW_OP_bit_piece/DW_OP_deref_size/etc. size
	// operand, in bytes (piece) or bits (bit_piece).
	Size uint64

	// BitOffset is DW_OP_bit_piece's second (offset) operand, in bits.
	BitOffset uint64

	// RefOffset is the absolute .debug_info offset of the DIE referenced
	// by DW_OP_{GNU_,}implicit_pointer.
	RefOffset uint64

	// ByteOffset is DW_OP_{GNU_,}implicit_pointer's signed byte offset
	// into the referenced location's value.
	ByteOffset int64
}

// IsImplicitPointer reports whether op is DW_OP_implicit_pointer in either
// its standardised (DWARF5) or GNU vendor-extension encoding.
func (op Op) IsImplicitPointer() bool {
	return op.Code == OpImplicitPointerStd || op.Code == OpGNUImplicitPointer
}

// IsEntryValue reports whether op is DW_OP_entry_value in either its
// standardised (DWARF5) or GNU vendor-extension encoding.
func (op Op) IsEntryValue() bool {
	return op.Code == OpEntryValueStd || op.Code == OpGNUEntryValue
}

// DecodeExpr decodes every operator of a DWARF location expression in
// turn, stopping at the first error or once the whole of expr has been
// consumed. addrSize is the target's address size in bytes (4 or 8),
// needed to decode DW_OP_addr's operand.
func DecodeExpr(expr []byte, addrSize int) ([]Op, error) {
	var ops []Op
	for len(expr) > 0 {
		op, n, err := decodeOp(expr, addrSize)
		if err != nil {
			return ops, err
		}
		ops = append(ops, op)
		expr = expr[n:]
	}
	return ops, nil
}

// decodeOp decodes a single operator from the head of expr, returning the
// operator and the number of bytes it (including its operands) occupies.
//
// operator reference: "DWARF Debugging Information Format Version 5",
// section 2.5, and the GNU vendor extensions for implicit_pointer and
// entry_value that predate their DWARF5 standardisation.
func decodeOp(expr []byte, addrSize int) (Op, int, error) {
	if len(expr) == 0 {
		return Op{}, 0, fmt.Errorf("empty expression")
	}

	code := Opcode(expr[0])
	rest := expr[1:]

	named := func(name string) Op { return Op{Code: code, Name: name} }

	switch code {
	case OpAddr:
		if len(rest) < addrSize {
			return Op{}, 0, fmt.Errorf("truncated DW_OP_addr")
		}
		return named("DW_OP_addr"), 1 + addrSize, nil

	case 0x06:
		return named("DW_OP_deref"), 1, nil
	case 0x08:
		return named("DW_OP_const1u"), 2, nil
	case 0x09:
		return named("DW_OP_const1s"), 2, nil
	case 0x0a:
		return named("DW_OP_const2u"), 3, nil
	case 0x0b:
		return named("DW_OP_const2s"), 3, nil
	case 0x0c:
		return named("DW_OP_const4u"), 5, nil
	case 0x0d:
		return named("DW_OP_const4s"), 5, nil
	case 0x0e:
		return named("DW_OP_const8u"), 9, nil
	case 0x0f:
		return named("DW_OP_const8s"), 9, nil
	case 0x10:
		_, n := leb128.DecodeULEB128(rest)
		return named("DW_OP_constu"), 1 + n, nil
	case 0x11:
		_, n := leb128.DecodeSLEB128(rest)
		return named("DW_OP_consts"), 1 + n, nil
	case 0x12:
		return named("DW_OP_dup"), 1, nil
	case 0x13:
		return named("DW_OP_drop"), 1, nil
	case 0x14:
		return named("DW_OP_over"), 1, nil
	case 0x15:
		return named("DW_OP_pick"), 2, nil
	case 0x16:
		return named("DW_OP_swap"), 1, nil
	case 0x17:
		return named("DW_OP_rot"), 1, nil
	case 0x18:
		return named("DW_OP_xderef"), 1, nil

	case 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f,
		0x20, 0x21, 0x22, 0x24, 0x25, 0x26, 0x27,
		0x29, 0x2a, 0x2b, 0x2c, 0x2d, 0x2e:
		// abs, and, div, minus, mod, mul, neg, not, or, plus, shl, shr,
		// shra, xor, eq, ge, gt, le, lt, ne -- all nullary stack ops.
		return named(arithName(code)), 1, nil

	case 0x23:
		_, n := leb128.DecodeULEB128(rest)
		return named("DW_OP_plus_uconst"), 1 + n, nil
	case 0x28:
		return named("DW_OP_bra"), 3, nil
	case 0x2f:
		return named("DW_OP_skip"), 3, nil

	case 0x90:
		_, n := leb128.DecodeULEB128(rest)
		return named("DW_OP_regx"), 1 + n, nil
	case 0x91:
		_, n := leb128.DecodeSLEB128(rest)
		return named("DW_OP_fbreg"), 1 + n, nil
	case 0x92:
		_, n1 := leb128.DecodeULEB128(rest)
		_, n2 := leb128.DecodeSLEB128(rest[n1:])
		return named("DW_OP_bregx"), 1 + n1 + n2, nil

	case OpPiece:
		size, n := leb128.DecodeULEB128(rest)
		return Op{Code: code, Name: "DW_OP_piece", Size: size}, 1 + n, nil

	case 0x94:
		return named("DW_OP_deref_size"), 2, nil
	case 0x95:
		return named("DW_OP_xderef_size"), 2, nil
	case 0x96:
		return named("DW_OP_nop"), 1, nil
	case 0x97:
		return named("DW_OP_push_object_address"), 1, nil
	case 0x98:
		return named("DW_OP_call2"), 3, nil
	case 0x99:
		return named("DW_OP_call4"), 5, nil
	case 0x9a:
		// offset into .debug_info; assumes the common 32-bit DWARF format.
		return named("DW_OP_call_ref"), 5, nil
	case 0x9b:
		return named("DW_OP_form_tls_address"), 1, nil
	case 0x9c:
		return named("DW_OP_call_frame_cfa"), 1, nil

	case OpBitPiece:
		size, n1 := leb128.DecodeULEB128(rest)
		offset, n2 := leb128.DecodeULEB128(rest[n1:])
		return Op{Code: code, Name: "DW_OP_bit_piece", Size: size, BitOffset: offset}, 1 + n1 + n2, nil

	case OpImplicitValue:
		length, n := leb128.DecodeULEB128(rest)
		return Op{Code: code, Name: "DW_OP_implicit_value", Size: length}, 1 + n + int(length), nil

	case OpStackValue:
		return named("DW_OP_stack_value"), 1, nil

	case OpImplicitPointerStd, OpGNUImplicitPointer:
		// operand 1: a reference to another debugging information entry
		// (here always encoded as a 4-byte .debug_info offset, the 32-bit
		// DWARF format). operand 2: a signed LEB128 byte offset.
		if len(rest) < 4 {
			return Op{}, 0, fmt.Errorf("truncated implicit_pointer operand")
		}
		ref := uint64(rest[0]) | uint64(rest[1])<<8 | uint64(rest[2])<<16 | uint64(rest[3])<<24
		byteOffset, n := leb128.DecodeSLEB128(rest[4:])
		name := "DW_OP_implicit_pointer"
		if code == OpGNUImplicitPointer {
			name = "DW_OP_GNU_implicit_pointer"
		}
		return Op{Code: code, Name: name, RefOffset: ref, ByteOffset: byteOffset}, 1 + 4 + n, nil

	case 0xa1:
		_, n := leb128.DecodeULEB128(rest)
		return named("DW_OP_addrx"), 1 + n, nil
	case 0xa2:
		_, n := leb128.DecodeULEB128(rest)
		return named("DW_OP_constx"), 1 + n, nil

	case OpEntryValueStd, OpGNUEntryValue:
		length, n := leb128.DecodeULEB128(rest)
		name := "DW_OP_entry_value"
		if code == OpGNUEntryValue {
			name = "DW_OP_GNU_entry_value"
		}
		return Op{Code: code, Name: name, Size: length}, 1 + n + int(length), nil

	case 0xa4:
		dieN, n1 := leb128.DecodeULEB128(rest)
		_ = dieN
		if len(rest) <= n1 {
			return Op{}, 0, fmt.Errorf("truncated DW_OP_const_type")
		}
		size := int(rest[n1])
		return named("DW_OP_const_type"), 1 + n1 + 1 + size, nil
	case 0xa5:
		_, n1 := leb128.DecodeULEB128(rest)
		_, n2 := leb128.DecodeULEB128(rest[n1:])
		return named("DW_OP_regval_type"), 1 + n1 + n2, nil
	case 0xa6:
		_, n := leb128.DecodeULEB128(rest[1:])
		return named("DW_OP_deref_type"), 1 + 1 + n, nil
	case 0xa7:
		_, n := leb128.DecodeULEB128(rest[1:])
		return named("DW_OP_xderef_type"), 1 + 1 + n, nil
	case 0xa8:
		_, n := leb128.DecodeULEB128(rest)
		return named("DW_OP_convert"), 1 + n, nil
	case 0xa9:
		_, n := leb128.DecodeULEB128(rest)
		return named("DW_OP_reinterpret"), 1 + n, nil
	}

	switch {
	case code >= 0x30 && code <= 0x4f:
		return named(fmt.Sprintf("DW_OP_lit%d", code-0x30)), 1, nil
	case code >= 0x50 && code <= 0x6f:
		return named(fmt.Sprintf("DW_OP_reg%d", code-0x50)), 1, nil
	case code >= 0x70 && code <= 0x8f:
		_, n := leb128.DecodeSLEB128(rest)
		return named(fmt.Sprintf("DW_OP_breg%d", code-0x70)), 1 + n, nil
	}

	return Op{}, 0, fmt.Errorf("unsupported opcode 0x%02x", byte(code))
}

func arithName(code Opcode) string {
	names := map[Opcode]string{
		0x19: "DW_OP_abs", 0x1a: "DW_OP_and", 0x1b: "DW_OP_div",
		0x1c: "DW_OP_minus", 0x1d: "DW_OP_mod", 0x1e: "DW_OP_mul",
		0x1f: "DW_OP_neg", 0x20: "DW_OP_not", 0x21: "DW_OP_or",
		0x22: "DW_OP_plus", 0x24: "DW_OP_shl", 0x25: "DW_OP_shr",
		0x26: "DW_OP_shra", 0x27: "DW_OP_xor", 0x29: "DW_OP_eq",
		0x2a: "DW_OP_ge", 0x2b: "DW_OP_gt", 0x2c: "DW_OP_le",
		0x2d: "DW_OP_lt", 0x2e: "DW_OP_ne",
	}
	return names[code]
}
