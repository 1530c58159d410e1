package workflows

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
)

func TestSignVerify(t *testing.T) {
	dir := setupConfig(t, nil)
	pub, priv := generateEC(t, dir)
	doc := writeTestFile(t, dir, "doc.txt", "signed content")
	sigPath := filepath.Join(dir, "doc.sig")

	signed, err := Sign(context.Background(), SignOptions{Algorithm: "sha384", Input: doc, KeyPath: priv, Output: sigPath})
	require.NoError(t, err)
	assert.Equal(t, "sha384", signed.Algorithm)
	assert.Equal(t, "EC", signed.KeyType)

	onDisk, err := os.ReadFile(sigPath)
	require.NoError(t, err)
	assert.Equal(t, signed.Signature, onDisk)

	res, err := Verify(context.Background(), VerifyOptions{Algorithm: "sha384", Input: doc, KeyPath: pub, SignaturePath: sigPath})
	require.NoError(t, err)
	assert.True(t, res.Valid)

	// Wrong digest: a clean invalid result.
	res, err = Verify(context.Background(), VerifyOptions{Algorithm: "sha256", Input: doc, KeyPath: pub, SignaturePath: sigPath})
	require.NoError(t, err)
	assert.False(t, res.Valid)

	entries := auditEntries(t, dir)
	require.Len(t, entries, 4)
	assert.Equal(t, "sign", entries[1].Operation)
	assert.Equal(t, "valid", entries[2].Result)
	assert.Equal(t, "invalid", entries[3].Result)
}

func TestSign_NoOutputLeavesSignatureToCaller(t *testing.T) {
	dir := setupConfig(t, nil)
	_, priv := generateEC(t, dir)
	doc := writeTestFile(t, dir, "doc.txt", "x")

	signed, err := Sign(context.Background(), SignOptions{Input: doc, KeyPath: priv})
	require.NoError(t, err)
	assert.Empty(t, signed.Output)
	assert.NotEmpty(t, signed.Signature)
	assert.Equal(t, "sha256", signed.Algorithm)
}

func TestSign_Errors(t *testing.T) {
	dir := setupConfig(t, nil)
	pub, _ := generateEC(t, dir)
	doc := writeTestFile(t, dir, "doc.txt", "x")

	_, err := Sign(context.Background(), SignOptions{Input: doc, KeyPath: pub})
	assert.ErrorIs(t, err, kerrors.ErrKeyFormat)

	_, err = Sign(context.Background(), SignOptions{Algorithm: "nope", Input: doc, KeyPath: pub})
	assert.ErrorIs(t, err, kerrors.ErrInvalidAlgorithm)
}

func TestVerify_Errors(t *testing.T) {
	dir := setupConfig(t, nil)
	pub, _ := generateEC(t, dir)
	doc := writeTestFile(t, dir, "doc.txt", "x")
	junk := writeTestFile(t, dir, "junk.sig", "not der")

	_, err := Verify(context.Background(), VerifyOptions{Input: doc, KeyPath: pub})
	assert.ErrorIs(t, err, kerrors.ErrInvalidArgument)

	_, err = Verify(context.Background(), VerifyOptions{Input: doc, KeyPath: pub, SignaturePath: junk})
	assert.ErrorIs(t, err, kerrors.ErrVerification)

	entries := auditEntries(t, dir)
	require.NotEmpty(t, entries)
	assert.Equal(t, "error", entries[len(entries)-1].Result)
}
