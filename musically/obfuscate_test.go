package musically

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObfuscate_KnownVector(t *testing.T) {
	t.Parallel()

	// "a@b.com" XORed byte-wise with 0x05, hex encoded.
	assert.Equal(t, "6445672b666a68", Obfuscate("a@b.com"))
}

func TestObfuscate_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, plaintext := range []string{"", "pw", "a@b.com", "s3cr3t!#valué"} {
		encoded := Obfuscate(plaintext)
		decoded, err := Deobfuscate(encoded)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decoded)
	}
}

func TestObfuscate_IsNotPlaintext(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t, "hunter2", Obfuscate("hunter2"))
	assert.NotContains(t, Obfuscate("a@b.com"), "@")
}

func TestObfuscate_Deterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Obfuscate("pw"), Obfuscate("pw"))
}

func TestDeobfuscate_RejectsInvalidHex(t *testing.T) {
	t.Parallel()

	_, err := Deobfuscate("not-hex!")
	assert.Error(t, err)
}
