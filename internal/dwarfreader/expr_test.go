package dwarfreader

import "testing"

func TestDecodeExprSingleAddr(t *testing.T) {
	// DW_OP_addr 0x08040000 (32-bit target)
	expr := []byte{byte(OpAddr), 0x00, 0x00, 0x04, 0x08}
	ops, err := DecodeExpr(expr, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want 1", len(ops))
	}
	if ops[0].Code != OpAddr {
		t.Errorf("got code %#x, want OpAddr", ops[0].Code)
	}
}

func TestDecodeExprRegAndBreg(t *testing.T) {
	// DW_OP_reg3, DW_OP_breg5 -16 (SLEB128 -16 = 0x70)
	expr := []byte{0x53, 0x75, 0x70}
	ops, err := DecodeExpr(expr, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("got %d ops, want 2", len(ops))
	}
	if ops[0].Name != "DW_OP_reg3" {
		t.Errorf("got %q, want DW_OP_reg3", ops[0].Name)
	}
	if ops[1].Name != "DW_OP_breg5" {
		t.Errorf("got %q, want DW_OP_breg5", ops[1].Name)
	}
}

func TestDecodeExprPieceAndBitPiece(t *testing.T) {
	// DW_OP_piece 4, DW_OP_bit_piece 3 2
	expr := []byte{byte(OpPiece), 0x04, byte(OpBitPiece), 0x03, 0x02}
	ops, err := DecodeExpr(expr, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("got %d ops, want 2", len(ops))
	}
	if ops[0].Code != OpPiece || ops[0].Size != 4 {
		t.Errorf("DW_OP_piece: got %+v", ops[0])
	}
	if ops[1].Code != OpBitPiece || ops[1].Size != 3 || ops[1].BitOffset != 2 {
		t.Errorf("DW_OP_bit_piece: got %+v", ops[1])
	}
}

func TestDecodeExprImplicitValueAndStackValue(t *testing.T) {
	// DW_OP_implicit_value 2 0xAA 0xBB, DW_OP_stack_value
	expr := []byte{byte(OpImplicitValue), 0x02, 0xaa, 0xbb, byte(OpStackValue)}
	ops, err := DecodeExpr(expr, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("got %d ops, want 2", len(ops))
	}
	if ops[0].Code != OpImplicitValue || ops[0].Size != 2 {
		t.Errorf("DW_OP_implicit_value: got %+v", ops[0])
	}
	if ops[1].Code != OpStackValue {
		t.Errorf("DW_OP_stack_value: got %+v", ops[1])
	}
}

func TestDecodeExprGNUImplicitPointer(t *testing.T) {
	// DW_OP_GNU_implicit_pointer: 4-byte ref offset + SLEB128 byte offset (-1 => 0x7f)
	expr := []byte{byte(OpGNUImplicitPointer), 0x10, 0x00, 0x00, 0x00, 0x7f}
	ops, err := DecodeExpr(expr, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want 1", len(ops))
	}
	if !ops[0].IsImplicitPointer() {
		t.Errorf("IsImplicitPointer() = false, want true")
	}
	if ops[0].RefOffset != 0x10 {
		t.Errorf("RefOffset = %#x, want 0x10", ops[0].RefOffset)
	}
	if ops[0].ByteOffset != -1 {
		t.Errorf("ByteOffset = %d, want -1", ops[0].ByteOffset)
	}
}

func TestDecodeExprUnsupportedOpcode(t *testing.T) {
	// 0xe0 is in the vendor-reserved range, not one of the GNU extensions
	// this decoder knows about.
	_, err := DecodeExpr([]byte{0xe0}, 8)
	if err == nil {
		t.Fatalf("expected an error for an unsupported opcode")
	}
}

func TestDecodeExprEmpty(t *testing.T) {
	ops, err := DecodeExpr(nil, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ops) != 0 {
		t.Errorf("got %d ops, want 0", len(ops))
	}
}
