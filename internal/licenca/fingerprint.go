package licenca

import (
	"crypto/md5"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Fingerprint identifica um dispositivo por md5(ip|user-agent). É uma
// identificação fraca de conveniência, não uma fronteira de segurança.
func Fingerprint(ip, userAgent string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(ip+"|"+userAgent)))
}

const alfabetoChave = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GerarChave produz uma chave de ativação no formato XXXX-XXXX-XXXX-XXXX.
func GerarChave() (string, error) {
	blocos := make([]string, 4)
	for i := range blocos {
		var bloco strings.Builder
		for j := 0; j < 4; j++ {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alfabetoChave))))
			if err != nil {
				return "", fmt.Errorf("não foi possível gerar a chave: %w", err)
			}
			bloco.WriteByte(alfabetoChave[n.Int64()])
		}
		blocos[i] = bloco.String()
	}
	return strings.Join(blocos, "-"), nil
}

// NormalizarChave aceita chaves coladas com espaços ou em minúsculas.
func NormalizarChave(chave string) string {
	return strings.ToUpper(strings.TrimSpace(chave))
}
