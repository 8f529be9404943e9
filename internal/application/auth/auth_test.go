package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/farmchain-go/internal/application/auth"
	"github.com/andrescamacho/farmchain-go/internal/application/mediator"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

type fakeWallet struct {
	valid   bool
	err     error
	called  bool
	address shared.Address
	message string
}

func (w *fakeWallet) Verify(ctx context.Context, address shared.Address, signature, message string) (bool, error) {
	w.called = true
	w.address = address
	w.message = message
	return w.valid, w.err
}

type signedRequest struct {
	FarmID    uint64
	SessionID string
	Sender    string
	Signature string
}

type unsignedRequest struct {
	FarmID uint64
}

const testSender = "0x71ce81cb65cbc9a04ba4d0d95b344c2cbf7dc223"

func TestSignatureMiddleware_ValidSignaturePassesThrough(t *testing.T) {
	// Arrange
	wallet := &fakeWallet{valid: true}
	middleware := auth.SignatureMiddleware(wallet)
	request := signedRequest{
		FarmID:    7,
		SessionID: "0xabc",
		Sender:    testSender,
		Signature: "0xsigned",
	}
	nextCalled := false
	next := func(ctx context.Context, req mediator.Request) (mediator.Response, error) {
		nextCalled = true
		return "ok", nil
	}

	// Act
	response, err := middleware(context.Background(), request, next)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ok", response)
	assert.True(t, nextCalled)
	assert.True(t, wallet.called)
	assert.Equal(t, testSender, wallet.address.Value())
	assert.Equal(t, "farm:7:session:0xabc", wallet.message)
}

func TestSignatureMiddleware_InvalidSignatureRejected(t *testing.T) {
	// Arrange
	wallet := &fakeWallet{valid: false}
	middleware := auth.SignatureMiddleware(wallet)
	request := signedRequest{
		FarmID:    7,
		SessionID: "0xabc",
		Sender:    testSender,
		Signature: "0xforged",
	}
	next := func(ctx context.Context, req mediator.Request) (mediator.Response, error) {
		t.Fatal("next should not be called for a bad signature")
		return nil, nil
	}

	// Act
	response, err := middleware(context.Background(), request, next)

	// Assert
	require.Error(t, err)
	assert.Nil(t, response)
	var badSig *auth.ErrBadSignature
	require.ErrorAs(t, err, &badSig)
	assert.Equal(t, testSender, badSig.Sender)
}

func TestSignatureMiddleware_UnsignedRequestSkipsVerification(t *testing.T) {
	// Arrange
	wallet := &fakeWallet{valid: false}
	middleware := auth.SignatureMiddleware(wallet)
	next := func(ctx context.Context, req mediator.Request) (mediator.Response, error) {
		return "ok", nil
	}

	// Act
	response, err := middleware(context.Background(), unsignedRequest{FarmID: 7}, next)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ok", response)
	assert.False(t, wallet.called)
}

func TestSignatureMiddleware_EmptySignatureRejectedWithoutRoundTrip(t *testing.T) {
	// Arrange
	wallet := &fakeWallet{valid: true}
	middleware := auth.SignatureMiddleware(wallet)
	request := signedRequest{FarmID: 7, SessionID: "0xabc", Sender: testSender}
	next := func(ctx context.Context, req mediator.Request) (mediator.Response, error) {
		t.Fatal("next should not be called")
		return nil, nil
	}

	// Act
	_, err := middleware(context.Background(), request, next)

	// Assert
	var badSig *auth.ErrBadSignature
	require.ErrorAs(t, err, &badSig)
	assert.False(t, wallet.called)
}

func TestSignatureMiddleware_MalformedSenderRejected(t *testing.T) {
	// Arrange
	wallet := &fakeWallet{valid: true}
	middleware := auth.SignatureMiddleware(wallet)
	request := signedRequest{
		FarmID:    7,
		SessionID: "0xabc",
		Sender:    "not-an-address",
		Signature: "0xsigned",
	}
	next := func(ctx context.Context, req mediator.Request) (mediator.Response, error) {
		t.Fatal("next should not be called")
		return nil, nil
	}

	// Act
	_, err := middleware(context.Background(), request, next)

	// Assert
	var badSig *auth.ErrBadSignature
	require.ErrorAs(t, err, &badSig)
	assert.False(t, wallet.called)
}

func TestSignatureMiddleware_WalletFailureSurfaces(t *testing.T) {
	// Arrange
	walletErr := errors.New("gateway unreachable")
	wallet := &fakeWallet{err: walletErr}
	middleware := auth.SignatureMiddleware(wallet)
	request := signedRequest{
		FarmID:    7,
		SessionID: "0xabc",
		Sender:    testSender,
		Signature: "0xsigned",
	}
	next := func(ctx context.Context, req mediator.Request) (mediator.Response, error) {
		t.Fatal("next should not be called")
		return nil, nil
	}

	// Act
	_, err := middleware(context.Background(), request, next)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, walletErr)
}

func TestSignatureMiddleware_PointerRequestsSupported(t *testing.T) {
	// Arrange
	wallet := &fakeWallet{valid: true}
	middleware := auth.SignatureMiddleware(wallet)
	request := &signedRequest{
		FarmID:    9,
		SessionID: "0xdef",
		Sender:    testSender,
		Signature: "0xsigned",
	}
	next := func(ctx context.Context, req mediator.Request) (mediator.Response, error) {
		return "ok", nil
	}

	// Act
	_, err := middleware(context.Background(), request, next)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "farm:9:session:0xdef", wallet.message)
}

func TestSignatureMessage_Format(t *testing.T) {
	assert.Equal(t, "farm:42:session:0xfeed", auth.SignatureMessage(42, "0xfeed"))
}
