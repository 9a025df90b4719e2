package services

import (
	"errors"
	"testing"
	"time"

	"ordergrab/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/datatypes"
)

const testSecret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	user := &models.User{Role: models.RolePlayer, GrabbedOrders: datatypes.JSONSlice[uint]{3, 9}}
	user.ID = 42
	session := &models.Session{SID: "abc", ExpiresAt: time.Now().Add(time.Hour)}

	token, err := IssueToken(testSecret, user, session)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Role != models.RolePlayer || claims.SessionID != "abc" || claims.Subject != "42" {
		t.Errorf("unexpected claims %+v", claims)
	}
	if len(claims.GrabbedOrders) != 2 || claims.GrabbedOrders[1] != 9 {
		t.Errorf("grabbed orders not embedded: %v", claims.GrabbedOrders)
	}
}

func TestParseTokenRejects(t *testing.T) {
	user := &models.User{Role: models.RolePlayer}
	user.ID = 1

	expired, _ := IssueToken(testSecret, user, &models.Session{SID: "s", ExpiresAt: time.Now().Add(-time.Minute)})
	if _, err := ParseToken(testSecret, expired); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: expected ErrInvalidToken, got %v", err)
	}

	valid, _ := IssueToken(testSecret, user, &models.Session{SID: "s", ExpiresAt: time.Now().Add(time.Hour)})
	if _, err := ParseToken("other-secret", valid); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: expected ErrInvalidToken, got %v", err)
	}

	noSession, _ := IssueToken(testSecret, user, &models.Session{ExpiresAt: time.Now().Add(time.Hour)})
	if _, err := ParseToken(testSecret, noSession); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("token without sid: expected ErrInvalidToken, got %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, SessionID: "s"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := ParseToken(testSecret, unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("alg none: expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "player", "0", nil)

	session, token, err := OpenSession(db, testSecret, time.Hour, user, "go-test", "127.0.0.1")
	if err != nil {
		t.Fatal(err)
	}
	if len(session.SID) != 36 {
		t.Errorf("expected uuid sid, got %q", session.SID)
	}

	gotSession, gotUser, err := ResolveSession(db, testSecret, token, time.Now())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if gotSession.SID != session.SID || gotUser.ID != user.ID {
		t.Errorf("resolved wrong session/user")
	}

	if _, _, err := ResolveSession(db, testSecret, token, time.Now().Add(2*time.Hour)); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("expected expired session, got %v", err)
	}

	if err := CloseSession(db, session.SID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ResolveSession(db, testSecret, token, time.Now()); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("closed session should not resolve, got %v", err)
	}
}
