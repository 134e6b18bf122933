package lexer

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

// bomUTF8 is the UTF-8 Byte Order Mark.
var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Normalize performs input normalization at the lexer boundary:
//  1. strips a leading UTF-8 BOM, if present
//  2. applies Unicode NFC normalization
//
// This ensures lexically equivalent source produces an identical token
// stream regardless of encoding variation (combining-mark order, a
// leading BOM from an editor). Normalization happens once, before the
// byte offsets spec.md treats as ground truth are ever computed, so every
// extent downstream is relative to the normalized bytes.
func Normalize(src []byte) []byte {
	src = bytes.TrimPrefix(src, bomUTF8)
	if !norm.NFC.IsNormal(src) {
		src = norm.NFC.Bytes(src)
	}
	return src
}
