package auth

import (
	"context"
	"fmt"
	"reflect"

	"github.com/andrescamacho/farmchain-go/internal/application/mediator"
	"github.com/andrescamacho/farmchain-go/internal/domain/ports"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// ErrBadSignature indicates the request signature does not match the
// sender's wallet.
type ErrBadSignature struct {
	Sender string
}

func (e *ErrBadSignature) Error() string {
	return "invalid signature"
}

// SignatureMessage is the canonical message a client signs when
// submitting a request for a farm session. Changing this format
// breaks every deployed client.
func SignatureMessage(farmID uint64, sessionID string) string {
	return fmt.Sprintf("farm:%d:session:%s", farmID, sessionID)
}

// SignatureMiddleware verifies wallet signatures on signed requests
// before they reach their handler. A request kind is signed when its
// struct carries a Signature field; other requests (queries, internal
// commands) pass through untouched.
func SignatureMiddleware(wallet ports.Wallet) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		creds, signed := extractCredentials(request)
		if !signed {
			return next(ctx, request)
		}

		// An empty signature can never verify; skip the round trip.
		if creds.signature == "" {
			return nil, &ErrBadSignature{Sender: creds.sender}
		}

		sender, err := shared.NewAddress(creds.sender)
		if err != nil {
			return nil, &ErrBadSignature{Sender: creds.sender}
		}

		valid, err := wallet.Verify(ctx, sender, creds.signature, SignatureMessage(creds.farmID, creds.sessionID))
		if err != nil {
			return nil, fmt.Errorf("verifying signature: %w", err)
		}
		if !valid {
			return nil, &ErrBadSignature{Sender: creds.sender}
		}

		return next(ctx, request)
	}
}

type credentials struct {
	farmID    uint64
	sessionID string
	sender    string
	signature string
}

// extractCredentials uses reflection to pull signing fields from a
// request. Returns false when the request kind carries no signature
// field at all.
func extractCredentials(request mediator.Request) (credentials, bool) {
	value := reflect.ValueOf(request)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return credentials{}, false
	}

	sigField := value.FieldByName("Signature")
	if !sigField.IsValid() || sigField.Kind() != reflect.String {
		return credentials{}, false
	}

	var creds credentials
	creds.signature = sigField.String()

	if f := value.FieldByName("FarmID"); f.IsValid() && f.Kind() == reflect.Uint64 {
		creds.farmID = f.Uint()
	}
	if f := value.FieldByName("SessionID"); f.IsValid() && f.Kind() == reflect.String {
		creds.sessionID = f.String()
	}
	if f := value.FieldByName("Sender"); f.IsValid() && f.Kind() == reflect.String {
		creds.sender = f.String()
	}

	return creds, true
}
