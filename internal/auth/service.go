// Package auth implements registration, login, credential verification and
// profile management for the recipe service.
package auth

import (
	"context"
	"errors"
	"strings"

	"fridgechef/internal/apperr"
	"fridgechef/internal/user"
)

// User-facing messages.
const (
	MsgRegisterMissing = "모든 필드를 입력해주세요."
	MsgEmailTaken      = "이미 사용 중인 이메일입니다."
	MsgLoginMissing    = "이메일과 비밀번호를 입력해주세요."
	MsgBadCredentials  = "이메일 또는 비밀번호가 잘못되었습니다."
	MsgLoginRequired   = "로그인이 필요합니다."
	MsgInvalidToken    = "유효하지 않은 토큰입니다."
	MsgUserNotFound    = "사용자를 찾을 수 없습니다."
	MsgRegisterFailed  = "회원가입 중 오류가 발생했습니다."
	MsgLoginFailed     = "로그인 중 오류가 발생했습니다."
	MsgProfileFailed   = "프로필 수정 중 오류가 발생했습니다."
	MsgProfileUpdated  = "프로필이 업데이트되었습니다."
)

// Session is the result of a successful registration or login.
type Session struct {
	Token string      `json:"token"`
	User  user.Public `json:"user"`
}

// ProfileUpdate carries the optional fields of a profile change. Nil means
// "leave unchanged".
type ProfileUpdate struct {
	Name        *string
	Preferences *user.Preferences
}

type Service struct {
	users  user.Store
	tokens *TokenManager
}

func NewService(users user.Store, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and returns a session for it.
func (s *Service) Register(ctx context.Context, email, password, name string) (*Session, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, apperr.Validation(MsgRegisterMissing)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict(MsgEmailTaken)
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, apperr.Internal(MsgRegisterFailed, err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, apperr.Internal(MsgRegisterFailed, err)
	}

	u := &user.User{Email: email, PasswordHash: hash, Name: name}
	id, err := s.users.Create(ctx, u)
	if errors.Is(err, user.ErrEmailTaken) {
		// lost a race with a concurrent registration
		return nil, apperr.Conflict(MsgEmailTaken)
	}
	if err != nil {
		return nil, apperr.Internal(MsgRegisterFailed, err)
	}
	u.ID = id

	return s.session(u, MsgRegisterFailed)
}

// Login checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation(MsgLoginMissing)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return nil, apperr.Auth(MsgBadCredentials, err)
	}
	if err != nil {
		return nil, apperr.Internal(MsgLoginFailed, err)
	}
	if err := CheckPassword(u.PasswordHash, password); err != nil {
		return nil, apperr.Auth(MsgBadCredentials, err)
	}

	return s.session(u, MsgLoginFailed)
}

func (s *Service) session(u *user.User, failMsg string) (*Session, error) {
	token, err := s.tokens.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		return nil, apperr.Internal(failMsg, err)
	}
	return &Session{Token: token, User: u.Public()}, nil
}

// Verify validates a bearer credential. A missing token is an Auth error, a
// presented but unverifiable one is Forbidden; the precise reason is only
// carried as the wrapped cause.
func (s *Service) Verify(token string) (*Claims, error) {
	claims, err := s.tokens.Verify(token)
	switch {
	case errors.Is(err, ErrMissingToken):
		return nil, apperr.Auth(MsgLoginRequired, err)
	case err != nil:
		return nil, apperr.Forbidden(MsgInvalidToken, err)
	}
	return claims, nil
}

// Profile returns the stored user.
func (s *Service) Profile(ctx context.Context, userID int64) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, apperr.NotFound(MsgUserNotFound)
	}
	if err != nil {
		return nil, apperr.Internal(MsgProfileFailed, err)
	}
	return u, nil
}

// UpdateProfile applies the supplied fields and returns the updated user. A
// blank name is treated as not supplied.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*user.User, error) {
	if upd.Name != nil {
		if name := strings.TrimSpace(*upd.Name); name != "" {
			if err := s.users.UpdateName(ctx, userID, name); err != nil {
				return nil, s.profileErr(err)
			}
		}
	}
	if upd.Preferences != nil {
		if err := s.users.UpdatePreferences(ctx, userID, *upd.Preferences); err != nil {
			return nil, s.profileErr(err)
		}
	}
	return s.Profile(ctx, userID)
}

func (s *Service) profileErr(err error) error {
	if errors.Is(err, user.ErrNotFound) {
		return apperr.NotFound(MsgUserNotFound)
	}
	return apperr.Internal(MsgProfileFailed, err)
}
