// Package crypto holds the cipher-level primitives behind ADEPT key
// recovery: CBC decryption of the wrapped license key and, on Windows,
// DPAPI unwrapping of the device key.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
)

// DecryptCBC decrypts ciphertext with AES in CBC mode using an
// all-zero IV. The sealing side supplies no explicit IV, so the first
// plaintext block depends only on the key and ciphertext.
func DecryptCBC(key, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
		return nil, errors.New("ciphertext is not a whole number of blocks")
	}

	plain := make([]byte, len(ciphertext))
	iv := make([]byte, block.BlockSize())
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)
	return plain, nil
}
