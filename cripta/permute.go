package cripta

import "strings"

// permute returns a len(rule)-bit value whose i-th bit (from the most
// significant end) is bit rule[i] of the inWidth-bit input, counted from 1.
func permute(value uint64, inWidth int, rule []uint8) uint64 {
	var out uint64
	for _, src := range rule {
		out = out<<1 | (value>>(uint(inWidth)-uint(src)))&1
	}
	return out
}

const mask28 = 0x0FFFFFFF

func rotl28(value uint32, shifts uint8) uint32 {
	value &= mask28
	return ((value << shifts) | (value >> (28 - shifts))) & mask28
}

// FormatBits renders the low width bits of value, most significant first,
// separated by a space every group bits. group <= 0 disables grouping.
func FormatBits(value uint64, width, group int) string {
	var sb strings.Builder
	sb.Grow(width + width/max(group, 1))
	for i := width - 1; i >= 0; i-- {
		if group > 0 && i != width-1 && (width-1-i)%group == 0 {
			sb.WriteByte(' ')
		}
		if (value>>uint(i))&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
