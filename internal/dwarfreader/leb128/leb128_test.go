package leb128

import "testing"

func TestDecodeULEB128(t *testing.T) {
	cases := []struct {
		name     string
		encoded  []uint8
		want     uint64
		consumed int
	}{
		{"zero", []uint8{0x00}, 0, 1},
		{"two", []uint8{0x02}, 2, 1},
		{"127", []uint8{0x7f}, 127, 1},
		{"128", []uint8{0x80, 0x01}, 128, 2},
		{"129", []uint8{0x81, 0x01}, 129, 2},
		{"12857", []uint8{0xb9, 0x64}, 12857, 2},
		{"trailing bytes ignored", []uint8{0x02, 0xff, 0xff}, 2, 1},
		{"truncated", []uint8{0x80}, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, n := DecodeULEB128(c.encoded)
			if got != c.want || n != c.consumed {
				t.Errorf("DecodeULEB128(%v) = %d, %d; want %d, %d", c.encoded, got, n, c.want, c.consumed)
			}
		})
	}
}

func TestDecodeSLEB128(t *testing.T) {
	cases := []struct {
		name     string
		encoded  []uint8
		want     int64
		consumed int
	}{
		{"zero", []uint8{0x00}, 0, 1},
		{"two", []uint8{0x02}, 2, 1},
		{"minus-two", []uint8{0x7e}, -2, 1},
		{"127", []uint8{0xff, 0x00}, 127, 2},
		{"minus-127", []uint8{0x81, 0x7f}, -127, 2},
		{"128", []uint8{0x80, 0x01}, 128, 2},
		{"minus-128", []uint8{0x80, 0x7f}, -128, 2},
		{"minus-129", []uint8{0xff, 0x7e}, -129, 2},
		{"truncated", []uint8{0x80}, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, n := DecodeSLEB128(c.encoded)
			if got != c.want || n != c.consumed {
				t.Errorf("DecodeSLEB128(%v) = %d, %d; want %d, %d", c.encoded, got, n, c.want, c.consumed)
			}
		})
	}
}
