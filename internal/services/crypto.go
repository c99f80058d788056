package services

import (
	"bytes"
	"crypto/des"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// mediaKey is the DES key the web player uses for encrypted_media_url.
var mediaKey = []byte("38346591")

// decryptMediaURL decrypts a base64 DES-ECB encrypted media URL and upgrades it to the 320kbps stream.
func decryptMediaURL(encrypted string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encrypted))
	if err != nil {
		return "", fmt.Errorf("failed to decode media url: %w", err)
	}
	if len(data) == 0 || len(data)%des.BlockSize != 0 {
		return "", fmt.Errorf("invalid media url length %d", len(data))
	}

	block, err := des.NewCipher(mediaKey)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	out := make([]byte, len(data))
	for i := 0; i < len(data); i += des.BlockSize {
		block.Decrypt(out[i:i+des.BlockSize], data[i:i+des.BlockSize])
	}

	out, err = pkcs5Unpad(out)
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(string(out), "_96.mp4", "_320.mp4"), nil
}

func pkcs5Unpad(b []byte) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > des.BlockSize || n > len(b) {
		return nil, errors.New("invalid padding")
	}
	if !bytes.Equal(b[len(b)-n:], bytes.Repeat([]byte{byte(n)}, n)) {
		return nil, errors.New("invalid padding")
	}
	return b[:len(b)-n], nil
}
