package musically

import (
	"encoding/hex"
)

// obfuscationKey is the fixed repeating XOR key the app applies to
// credentials before transmission. This is obfuscation matching the app's
// wire format, not encryption: it hides credentials from casual inspection
// only.
var obfuscationKey = []byte{0x05}

// Obfuscate applies the app's credential encoding: each byte XORed against
// the repeating key, then hex-encoded. Deterministic and reversible via
// Deobfuscate.
func Obfuscate(plaintext string) string {
	data := []byte(plaintext)
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ obfuscationKey[i%len(obfuscationKey)]
	}
	return hex.EncodeToString(out)
}

// Deobfuscate reverses Obfuscate.
func Deobfuscate(encoded string) (string, error) {
	data, err := hex.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ obfuscationKey[i%len(obfuscationKey)]
	}
	return string(out), nil
}
