// Package filestore persists the state as one encrypted JSON file
//
// File layout:
//
//	magic "NWE1" | argon2 time (u32) | memory KiB (u32) | threads (u8) | salt (16) | nonce (24) | ciphertext
//
// The key is derived from a passphrase with Argon2id and the payload is sealed
// with XChaCha20-Poly1305
// The header is bound to the ciphertext as associated data
package filestore

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/thisisprabha/networth/internal/adapter/repository/record"
	"github.com/thisisprabha/networth/internal/domain"
)

const (
	saltSize   = 16
	headerSize = 4 + 4 + 4 + 1 + saltSize + chacha20poly1305.NonceSizeX
)

var magic = []byte("NWE1")

var (
	// ErrBadPassphrase is returned when the file cannot be decrypted with the configured key
	ErrBadPassphrase = errors.New("failed to decrypt state file: wrong key or corrupted data")
	// ErrMalformed is returned when the file is not a state file
	ErrMalformed = errors.New("malformed state file")
)

// KDFParams are the Argon2id cost parameters
type KDFParams struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// DefaultKDF follows the RFC 9106 second recommended option
var DefaultKDF = KDFParams{Time: 3, Memory: 64 * 1024, Threads: 4}

// Store implements domain.StateStore on an encrypted file
type Store struct {
	path       string
	passphrase []byte
	kdf        KDFParams

	mu sync.Mutex
	// cache of the last derived key
	keySalt []byte
	keyKDF  KDFParams
	key     []byte
}

// NewStore creates a store for path
// The file is created on the first Save
func NewStore(path, passphrase string, kdf KDFParams) (*Store, error) {
	if path == "" {
		return nil, errors.New("state file path is required")
	}
	if passphrase == "" {
		return nil, errors.New("encryption key is required")
	}
	if kdf.Time == 0 || kdf.Memory == 0 || kdf.Threads == 0 {
		kdf = DefaultKDF
	}
	return &Store{path: path, passphrase: []byte(passphrase), kdf: kdf}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) LoadEntries(ctx context.Context) ([]domain.Entry, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Entries(), nil
}

func (s *Store) LoadSettings(ctx context.Context) (domain.Settings, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return doc.SettingsOrDefault(), nil
}

func (s *Store) LoadSnapshots(ctx context.Context) ([]domain.NetWorthSnapshot, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.History(), nil
}

// Save encrypts the state under a fresh salt and nonce and atomically replaces the file
func (s *Store) Save(ctx context.Context, state domain.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	plaintext, err := json.Marshal(record.FromState(state))
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	header := make([]byte, headerSize)
	copy(header, magic)
	binary.BigEndian.PutUint32(header[4:8], s.kdf.Time)
	binary.BigEndian.PutUint32(header[8:12], s.kdf.Memory)
	header[12] = s.kdf.Threads
	salt := header[13 : 13+saltSize]
	nonce := header[13+saltSize:]
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aead, err := chacha20poly1305.NewX(s.deriveKey(salt, s.kdf))
	if err != nil {
		return fmt.Errorf("failed to create cipher: %w", err)
	}
	sealed := aead.Seal(append([]byte(nil), header...), nonce, plaintext, header)

	return writeAtomic(s.path, sealed)
}

func (s *Store) Close() error { return nil }

// read decrypts the file; a missing file is an empty document
func (s *Store) read(ctx context.Context) (record.Document, error) {
	if err := ctx.Err(); err != nil {
		return record.Document{}, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return record.Document{}, nil
	}
	if err != nil {
		return record.Document{}, fmt.Errorf("failed to read state file: %w", err)
	}
	if len(data) < headerSize+chacha20poly1305.Overhead || !bytes.Equal(data[:4], magic) {
		return record.Document{}, ErrMalformed
	}

	header := data[:headerSize]
	kdf := KDFParams{
		Time:    binary.BigEndian.Uint32(header[4:8]),
		Memory:  binary.BigEndian.Uint32(header[8:12]),
		Threads: header[12],
	}
	if kdf.Time == 0 || kdf.Memory == 0 || kdf.Threads == 0 {
		return record.Document{}, ErrMalformed
	}
	salt := header[13 : 13+saltSize]
	nonce := header[13+saltSize:]

	s.mu.Lock()
	key := s.deriveKey(salt, kdf)
	s.mu.Unlock()

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return record.Document{}, fmt.Errorf("failed to create cipher: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce, data[headerSize:], header)
	if err != nil {
		return record.Document{}, ErrBadPassphrase
	}

	var doc record.Document
	if err := json.Unmarshal(plaintext, &doc); err != nil {
		return record.Document{}, fmt.Errorf("failed to decode state: %w", err)
	}
	return doc, nil
}

// deriveKey must be called with mu held
func (s *Store) deriveKey(salt []byte, kdf KDFParams) []byte {
	if s.key != nil && s.keyKDF == kdf && bytes.Equal(s.keySalt, salt) {
		return s.key
	}
	s.key = argon2.IDKey(s.passphrase, salt, kdf.Time, kdf.Memory, kdf.Threads, chacha20poly1305.KeySize)
	s.keySalt = append(s.keySalt[:0], salt...)
	s.keyKDF = kdf
	return s.key
}

// writeAtomic writes data to a temp file in the target directory and renames it over path
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
