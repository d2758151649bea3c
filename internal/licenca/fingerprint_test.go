package licenca

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintDeterministico(t *testing.T) {
	a := Fingerprint("10.0.0.1", "Mozilla/5.0")
	b := Fingerprint("10.0.0.1", "Mozilla/5.0")
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestFingerprintMudaComIPOuUserAgent(t *testing.T) {
	base := Fingerprint("10.0.0.1", "Mozilla/5.0")
	assert.NotEqual(t, base, Fingerprint("10.0.0.2", "Mozilla/5.0"))
	assert.NotEqual(t, base, Fingerprint("10.0.0.1", "curl/8.0"))
}

func TestGerarChaveFormato(t *testing.T) {
	padrao := regexp.MustCompile(`^[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

	vistas := make(map[string]bool)
	for i := 0; i < 20; i++ {
		chave, err := GerarChave()
		require.NoError(t, err)
		assert.Regexp(t, padrao, chave)
		vistas[chave] = true
	}
	assert.Greater(t, len(vistas), 1, "chaves geradas devem variar")
}

func TestNormalizarChave(t *testing.T) {
	assert.Equal(t, "ABCD-1234-EFGH-5678", NormalizarChave("  abcd-1234-efgh-5678 "))
}
