package client

import (
	"context"

	"github.com/jassmeen122/techmentorai/core"
	"go.uber.org/zap"
)

// User is an authenticated principal. The stub never produces one.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated session. The stub never produces one.
type Session struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// SessionData is the data of GetSession.
type SessionData struct {
	Session *Session `json:"session"`
}

// UserData is the data of GetUser, SignInWithPassword and SignUp.
type UserData struct {
	User *User `json:"user"`
}

// Credentials are the arguments of SignInWithPassword and SignUp.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthEvent names a change of authentication state.
type AuthEvent string

const (
	AuthSignedIn  AuthEvent = "SIGNED_IN"
	AuthSignedOut AuthEvent = "SIGNED_OUT"
)

// AuthStateCallback observes authentication state changes.
type AuthStateCallback func(event AuthEvent, session *Session)

// Subscription is returned by OnAuthStateChange.
type Subscription struct{}

// Unsubscribe is a no-op.
func (s *Subscription) Unsubscribe() {}

// SubscriptionData is the data of OnAuthStateChange.
type SubscriptionData struct {
	Subscription *Subscription `json:"subscription"`
}

// Auth mimics a session API without an identity provider behind it.
//
// Every caller is unauthenticated: sessions and users are always nil, and
// sign-in and sign-up fail with an error whose Kind is
// core.KindNotImplemented, so callers can tell the stub apart from a real
// "no session" answer.
type Auth struct {
	logger *zap.Logger
}

// GetSession always reports no session.
func (a *Auth) GetSession(ctx context.Context) core.Envelope[SessionData] {
	return core.Ok(SessionData{})
}

// GetUser always reports no user.
func (a *Auth) GetUser(ctx context.Context) core.Envelope[UserData] {
	return core.Ok(UserData{})
}

// OnAuthStateChange accepts callback and never invokes it.
func (a *Auth) OnAuthStateChange(callback AuthStateCallback) core.Envelope[SubscriptionData] {
	return core.Ok(SubscriptionData{Subscription: &Subscription{}})
}

// SignInWithPassword is not implemented.
func (a *Auth) SignInWithPassword(ctx context.Context, credentials Credentials) core.Envelope[UserData] {
	a.logger.Debug("auth stub called", zap.String("method", "SignInWithPassword"))
	return core.Fail[UserData](core.NotImplementedError("authentication"))
}

// SignUp is not implemented.
func (a *Auth) SignUp(ctx context.Context, credentials Credentials) core.Envelope[UserData] {
	a.logger.Debug("auth stub called", zap.String("method", "SignUp"))
	return core.Fail[UserData](core.NotImplementedError("authentication"))
}

// SignOut always succeeds.
func (a *Auth) SignOut(ctx context.Context) core.Ack {
	return core.Ack{}
}
