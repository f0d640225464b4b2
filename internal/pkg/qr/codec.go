package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/scrypt"
)

// Codec errors
var (
	// ErrMalformedCode is returned when a scanned token is not valid
	// iv:ciphertext hex, or decryption/parsing fails.
	ErrMalformedCode = errors.New("malformed check-in code")
	// ErrExpiredCode is returned when a decoded payload carries the wrong
	// marker or a date other than today.
	ErrExpiredCode = errors.New("check-in code expired")
)

// TypeRoomCheckIn is the fixed marker embedded in every check-in payload
const TypeRoomCheckIn = "roomcheckin"

// DateLayout is the calendar-day format bound into each code
const DateLayout = "2006-01-02"

const keySalt = "dormisphere-qr"

// Payload is the plaintext carried inside a check-in code. The nonce makes
// every generated code unique even within a single day.
type Payload struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	Nonce string `json:"nonce"`
}

// Codec encrypts and decrypts check-in codes with a key derived from the
// configured passphrase.
type Codec struct {
	key []byte
}

// NewCodec derives a 256-bit key from the passphrase and returns a codec
func NewCodec(passphrase string) (*Codec, error) {
	if passphrase == "" {
		return nil, errors.New("qr passphrase is empty")
	}

	key, err := scrypt.Key([]byte(passphrase), []byte(keySalt), 1<<15, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("failed to derive qr key: %w", err)
	}

	return &Codec{key: key}, nil
}

// Generate builds and encrypts a payload bound to the given day
func (c *Codec) Generate(now time.Time) (string, error) {
	payload := Payload{
		Date:  now.Format(DateLayout),
		Type:  TypeRoomCheckIn,
		Nonce: uuid.New().String(),
	}
	return c.Encrypt(payload)
}

// Encrypt serializes the payload and encrypts it under AES-256-CBC with a
// random IV. The wire format is hex(iv):hex(ciphertext).
func (c *Codec) Encrypt(payload Payload) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal qr payload: %w", err)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt parses iv:ciphertext, decrypts, and unmarshals the payload.
// Any structural failure maps to ErrMalformedCode.
func (c *Codec) Decrypt(code string) (*Payload, error) {
	parts := strings.SplitN(code, ":", 2)
	if len(parts) < 2 {
		return nil, ErrMalformedCode
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return nil, ErrMalformedCode
	}

	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrMalformedCode
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, err = pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return nil, ErrMalformedCode
	}

	payload := &Payload{}
	if err := json.Unmarshal(plaintext, payload); err != nil {
		return nil, ErrMalformedCode
	}

	return payload, nil
}

// Validate checks the marker and binds the code to the current calendar
// day. Codes generated on any other day are rejected.
func (c *Codec) Validate(payload *Payload, now time.Time) error {
	if payload == nil {
		return ErrMalformedCode
	}
	if payload.Type != TypeRoomCheckIn {
		return ErrExpiredCode
	}
	if payload.Date != now.Format(DateLayout) {
		return ErrExpiredCode
	}
	return nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}
