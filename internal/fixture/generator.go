// Package fixture builds real Header values from operator-supplied
// passwords and plaintext, encodes them, and writes them to disk as
// fixture files for exercising the header codec end to end.
package fixture

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hambosto/vaultheader/internal/crypto/aead"
	"github.com/hambosto/vaultheader/internal/crypto/kdf"
	"github.com/hambosto/vaultheader/internal/crypto/randsrc"
	"github.com/hambosto/vaultheader/internal/header"
	"github.com/hambosto/vaultheader/internal/ui"
)

// Plan is the fixture generator's internal, typed view of a ui.FixturePlan
// once its string choices have been resolved to domain values.
type Plan struct {
	Algorithm     header.Algorithm
	HashingKind   header.HashingKind
	Params        header.Params
	Passwords     []string
	IncludeObject bool
	ObjectData    string
	OutputDir     string
	Count         int
}

// FromUIPlan resolves a ui.FixturePlan's string selections into domain
// values, returning an error if the operator's choice doesn't map to
// anything the codec knows about.
func FromUIPlan(p ui.FixturePlan) (Plan, error) {
	var plan Plan

	switch p.Algorithm {
	case "aes256gcm":
		plan.Algorithm = header.Aes256Gcm
	case "aes256gcmsiv":
		plan.Algorithm = header.Aes256GcmSiv
	case "xchacha20poly1305":
		plan.Algorithm = header.XChaCha20Poly1305
	default:
		return plan, fmt.Errorf("fixture: unknown algorithm choice %q", p.Algorithm)
	}

	switch p.HashingKind {
	case "argon2id":
		plan.HashingKind = header.HashingArgon2id
	case "blake3balloon":
		plan.HashingKind = header.HashingBlake3Balloon
	default:
		return plan, fmt.Errorf("fixture: unknown KDF choice %q", p.HashingKind)
	}

	switch p.Params {
	case "standard":
		plan.Params = header.ParamsStandard
	case "hardened":
		plan.Params = header.ParamsHardened
	case "paranoid":
		plan.Params = header.ParamsParanoid
	default:
		return plan, fmt.Errorf("fixture: unknown difficulty choice %q", p.Params)
	}

	plan.Passwords = p.Passwords
	plan.IncludeObject = p.IncludeObject
	plan.ObjectData = p.ObjectData
	plan.OutputDir = p.OutputDir
	plan.Count = p.Count

	return plan, nil
}

// Generator assembles and writes header fixtures.
type Generator struct{}

// NewGenerator creates a new Generator instance.
func NewGenerator() *Generator {
	return &Generator{}
}

// Build constructs one real Header from plan: one keyslot per password,
// wrapping a freshly-generated content key, and (if requested) one
// HeaderObject carrying plan.ObjectData encrypted under the content key.
func (g *Generator) Build(plan Plan) (header.Header, error) {
	contentKey := make([]byte, 32)
	if _, err := rand.Read(contentKey); err != nil {
		return header.Header{}, fmt.Errorf("fixture: generating content key: %w", err)
	}

	headerNonceBytes := make([]byte, plan.Algorithm.NonceLen())
	if _, err := rand.Read(headerNonceBytes); err != nil {
		return header.Header{}, fmt.Errorf("fixture: generating header nonce: %w", err)
	}
	headerNonce, err := header.NewNonce(plan.Algorithm, headerNonceBytes)
	if err != nil {
		return header.Header{}, err
	}

	keyslots := make([]header.Keyslot, len(plan.Passwords))
	for i, password := range plan.Passwords {
		slot, err := g.buildKeyslot(plan, password, contentKey)
		if err != nil {
			return header.Header{}, fmt.Errorf("fixture: building keyslot %d: %w", i, err)
		}
		keyslots[i] = slot
	}

	var objects []header.HeaderObject
	if plan.IncludeObject {
		obj, err := g.buildObject(plan, contentKey)
		if err != nil {
			return header.Header{}, fmt.Errorf("fixture: building header object: %w", err)
		}
		objects = []header.HeaderObject{obj}
	}

	return header.NewHeader(header.HeaderVersionV1, plan.Algorithm, headerNonce, keyslots, objects)
}

func (g *Generator) buildKeyslot(plan Plan, password string, contentKey []byte) (header.Keyslot, error) {
	hashSalt, err := randomSalt()
	if err != nil {
		return header.Keyslot{}, err
	}
	wrapSalt, err := randomSalt()
	if err != nil {
		return header.Keyslot{}, err
	}

	hashingAlgorithm := header.HashingAlgorithm{Kind: plan.HashingKind, Params: plan.Params}

	wrapKey, err := kdf.Derive(hashingAlgorithm, []byte(password), wrapSalt.Inner())
	if err != nil {
		return header.Keyslot{}, fmt.Errorf("deriving wrap key: %w", err)
	}

	cipher, err := aead.New(plan.Algorithm, wrapKey)
	if err != nil {
		return header.Keyslot{}, fmt.Errorf("constructing AEAD: %w", err)
	}

	keyNonceBytes := make([]byte, plan.Algorithm.NonceLen())
	if _, err := rand.Read(keyNonceBytes); err != nil {
		return header.Keyslot{}, fmt.Errorf("generating key nonce: %w", err)
	}
	keyNonce, err := header.NewNonce(plan.Algorithm, keyNonceBytes)
	if err != nil {
		return header.Keyslot{}, err
	}

	wrapped := cipher.Seal(nil, keyNonceBytes, contentKey, nil)
	encryptedKey, err := header.NewEncryptedKey(wrapped, keyNonce)
	if err != nil {
		return header.Keyslot{}, err
	}

	return header.Keyslot{
		HashingAlgorithm: hashingAlgorithm,
		HashSalt:         hashSalt,
		Salt:             wrapSalt,
		EncryptedKey:     encryptedKey,
	}, nil
}

func (g *Generator) buildObject(plan Plan, contentKey []byte) (header.HeaderObject, error) {
	idSalt, err := randomSalt()
	if err != nil {
		return header.HeaderObject{}, err
	}

	cipher, err := aead.New(plan.Algorithm, contentKey)
	if err != nil {
		return header.HeaderObject{}, fmt.Errorf("constructing AEAD: %w", err)
	}

	idNonceBytes := make([]byte, plan.Algorithm.NonceLen())
	if _, err := rand.Read(idNonceBytes); err != nil {
		return header.HeaderObject{}, fmt.Errorf("generating identifier nonce: %w", err)
	}
	idNonce, err := header.NewNonce(plan.Algorithm, idNonceBytes)
	if err != nil {
		return header.HeaderObject{}, err
	}

	idKeyBytes := make([]byte, header.EncryptedKeyLen-16)
	if _, err := rand.Read(idKeyBytes); err != nil {
		return header.HeaderObject{}, fmt.Errorf("generating identifier key: %w", err)
	}
	wrappedID := cipher.Seal(nil, idNonceBytes, idKeyBytes, nil)
	idKey, err := header.NewEncryptedKey(wrappedID, idNonce)
	if err != nil {
		return header.HeaderObject{}, err
	}

	dataNonceBytes := make([]byte, plan.Algorithm.NonceLen())
	if _, err := rand.Read(dataNonceBytes); err != nil {
		return header.HeaderObject{}, fmt.Errorf("generating object nonce: %w", err)
	}
	dataNonce, err := header.NewNonce(plan.Algorithm, dataNonceBytes)
	if err != nil {
		return header.HeaderObject{}, err
	}

	sealed := cipher.Seal(nil, dataNonceBytes, []byte(plan.ObjectData), nil)

	return header.HeaderObject{
		Identifier: header.HeaderObjectIdentifier{Key: idKey, Salt: idSalt},
		Nonce:      dataNonce,
		Data:       sealed,
	}, nil
}

func randomSalt() (header.Salt, error) {
	b := make([]byte, header.SaltLen)
	if _, err := rand.Read(b); err != nil {
		return header.Salt{}, fmt.Errorf("generating salt: %w", err)
	}
	return header.NewSalt(b)
}

// WriteFixture encodes h and writes it to dir/name, creating dir if needed.
func (g *Generator) WriteFixture(h header.Header, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("fixture: creating output directory: %w", err)
	}

	encoded, err := header.EncodeHeader(h, randsrc.System)
	if err != nil {
		return "", fmt.Errorf("fixture: encoding header: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, encoded, 0o600); err != nil {
		return "", fmt.Errorf("fixture: writing %s: %w", path, err)
	}

	return path, nil
}
