// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256r1

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"math/big"

	"github.com/suikit/go-sui/crypto"
)

const (
	PublicKeyLen  = 33 // compressed SEC1 form
	PrivateKeyLen = 32
	SignatureLen  = 64 // r || s

	rsLen = 32
)

type (
	PublicKey  [PublicKeyLen]byte
	PrivateKey [PrivateKeyLen]byte
	Signature  [SignatureLen]byte
)

var (
	EmptyPublicKey  = [PublicKeyLen]byte{}
	EmptyPrivateKey = [PrivateKeyLen]byte{}
	EmptySignature  = [SignatureLen]byte{}
)

// secp256r1Order is the curve order for the secp256r1 (P-256) curve.
var secp256r1Order = elliptic.P256().Params().N

// secp256r1HalfOrder is half the curve order of the secp256r1 (P-256) curve.
//
// source: https://github.com/bitcoin/bips/blob/master/bip-0062.mediawiki#low-s-values-in-signatures
var secp256r1HalfOrder = new(big.Int).Div(secp256r1Order, big.NewInt(2))

// IsNormalized returns true if [s] falls in the lower half of the curve order
// (inclusive). This should be used when verifying signatures to ensure they
// are not malleable.
func IsNormalized(s *big.Int) bool {
	return s.Cmp(secp256r1HalfOrder) != 1
}

// NormalizeSignature inverts [s] if it is not in the lower half of the curve order.
func NormalizeSignature(s *big.Int) *big.Int {
	if IsNormalized(s) {
		return s
	}
	return new(big.Int).Sub(secp256r1Order, s)
}

// GeneratePrivateKey returns a secp256r1 PrivateKey.
func GeneratePrivateKey() (PrivateKey, error) {
	k, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return EmptyPrivateKey, err
	}
	var priv PrivateKey
	k.D.FillBytes(priv[:])
	return priv, nil
}

// PrivateKeyFromBytes validates and copies a 32 byte scalar. A zero scalar or
// one at or above the curve order is rejected.
func PrivateKeyFromBytes(b []byte) (PrivateKey, error) {
	if len(b) != PrivateKeyLen {
		return EmptyPrivateKey, crypto.ErrInvalidKeyMaterial
	}
	d := new(big.Int).SetBytes(b)
	if d.Sign() == 0 || d.Cmp(secp256r1Order) >= 0 {
		return EmptyPrivateKey, crypto.ErrInvalidKeyMaterial
	}
	return PrivateKey(b), nil
}

// PublicKey returns the compressed public key associated with the secp256r1
// PrivateKey p.
func (p PrivateKey) PublicKey() PublicKey {
	x, y := elliptic.P256().ScalarBaseMult(p[:])
	return PublicKey(elliptic.MarshalCompressed(elliptic.P256(), x, y))
}

// Sign returns a valid signature for msg using pk.
//
// The message is hashed with SHA-256 and the nonce is derived with RFC6979
// (HMAC-SHA256 DRBG), so signatures are reproducible for a given (key, msg)
// pair. [s] is kept in the lower half of the curve order.
func Sign(msg []byte, pk PrivateKey) (Signature, error) {
	d := new(big.Int).SetBytes(pk[:])
	if d.Sign() == 0 || d.Cmp(secp256r1Order) >= 0 {
		return EmptySignature, crypto.ErrInvalidKeyMaterial
	}

	digest := sha256.Sum256(msg)
	z := hashToInt(digest[:])

	curve := elliptic.P256()
	nonces := newNonceReader(pk[:], digest[:])
	for {
		k := nonces.next()

		var kb [rsLen]byte
		k.FillBytes(kb[:])
		rx, _ := curve.ScalarBaseMult(kb[:])
		r := new(big.Int).Mod(rx, secp256r1Order)
		if r.Sign() == 0 {
			continue
		}

		// s = k^-1 * (z + r*d) mod n
		s := new(big.Int).Mul(r, d)
		s.Add(s, z)
		s.Mul(s, new(big.Int).ModInverse(k, secp256r1Order))
		s.Mod(s, secp256r1Order)
		if s.Sign() == 0 {
			continue
		}
		s = NormalizeSignature(s)

		var sig Signature
		r.FillBytes(sig[:rsLen])
		s.FillBytes(sig[rsLen:])
		return sig, nil
	}
}

// Verify returns whether sig is a valid signature of msg by p.
//
// The value of [s] in [sig] must be in the lower half of the curve order for
// the signature to be considered valid.
func Verify(msg []byte, p PublicKey, sig Signature) bool {
	curve := elliptic.P256()
	x, y := elliptic.UnmarshalCompressed(curve, p[:])
	if x == nil {
		// not a valid compressed point on the curve
		return false
	}
	if x.Sign() == 0 && y.Sign() == 0 {
		return false
	}
	pk := &ecdsa.PublicKey{Curve: curve, X: x, Y: y}

	r := new(big.Int).SetBytes(sig[:rsLen])
	s := new(big.Int).SetBytes(sig[rsLen:])
	if !IsNormalized(s) {
		return false
	}

	digest := sha256.Sum256(msg)
	return ecdsa.Verify(pk, digest[:], r, s)
}

// hashToInt converts a digest to an integer per SEC1 4.1.3. P-256's order is
// 256 bits, the same width as the SHA-256 digest, so no truncation occurs.
func hashToInt(hash []byte) *big.Int {
	return new(big.Int).SetBytes(hash)
}

// nonceReader yields deterministic nonce candidates per RFC6979 section 3.2.
// The first candidate is almost always valid; further candidates exist only
// to satisfy the (cryptographically unreachable) r == 0 / s == 0 cases.
type nonceReader struct {
	k []byte
	v []byte
}

func newNonceReader(priv, hash []byte) *nonceReader {
	// bits2octets: reduce the digest mod n, then pad to the octet length of n.
	h := new(big.Int).SetBytes(hash)
	h.Mod(h, secp256r1Order)
	hb := make([]byte, rsLen)
	h.FillBytes(hb)

	n := &nonceReader{
		k: make([]byte, sha256.Size),
		v: make([]byte, sha256.Size),
	}
	for i := range n.v {
		n.v[i] = 0x01
	}
	n.update(append([]byte{0x00}, append(append([]byte{}, priv...), hb...)...))
	n.update(append([]byte{0x01}, append(append([]byte{}, priv...), hb...)...))
	return n
}

func (n *nonceReader) update(suffix []byte) {
	mac := hmac.New(sha256.New, n.k)
	mac.Write(n.v)
	mac.Write(suffix)
	n.k = mac.Sum(nil)

	mac = hmac.New(sha256.New, n.k)
	mac.Write(n.v)
	n.v = mac.Sum(nil)
}

func (n *nonceReader) next() *big.Int {
	for {
		mac := hmac.New(sha256.New, n.k)
		mac.Write(n.v)
		n.v = mac.Sum(nil)

		k := new(big.Int).SetBytes(n.v)
		if k.Sign() > 0 && k.Cmp(secp256r1Order) < 0 {
			return k
		}
		n.update([]byte{0x00})
	}
}
