package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/internal/members"
	pkgAuth "github.com/clubmate-app/clubmate-backend/pkg/auth"
	"github.com/clubmate-app/clubmate-backend/pkg/auth/session"
	"github.com/clubmate-app/clubmate-backend/pkg/config"
	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/clubmate-app/clubmate-backend/pkg/security"
)

type stubMemberRepo struct {
	byID       map[uuid.UUID]*models.Member
	lastLogins map[uuid.UUID]time.Time
}

func newStubMemberRepo() *stubMemberRepo {
	return &stubMemberRepo{
		byID:       make(map[uuid.UUID]*models.Member),
		lastLogins: make(map[uuid.UUID]time.Time),
	}
}

func (s *stubMemberRepo) add(member *models.Member) {
	s.byID[member.ID] = member
}

func (s *stubMemberRepo) Create(_ context.Context, dto members.CreateMemberDTO) (*models.Member, error) {
	member := dto.ToModel()
	member.ID = uuid.New()
	s.byID[member.ID] = member
	return member, nil
}

func (s *stubMemberRepo) FindByEmail(_ context.Context, email string) (*models.Member, error) {
	for _, member := range s.byID {
		if member.Email == email {
			return member, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubMemberRepo) FindByNickname(_ context.Context, nickname string) (*models.Member, error) {
	for _, member := range s.byID {
		if member.Nickname == nickname {
			return member, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubMemberRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Member, error) {
	member, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return member, nil
}

func (s *stubMemberRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogins[id] = at
	return nil
}

type stubSessionManager struct {
	sessions map[string]string
	revoked  []string
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{sessions: make(map[string]string)}
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.sessions[accessID] = token
	return token, nil
}

func (s *stubSessionManager) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.sessions[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.sessions, oldAccessID)
	newAccessID := session.NewAccessID()
	token := "refresh-" + newAccessID
	s.sessions[newAccessID] = token
	return newAccessID, token, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	delete(s.sessions, accessID)
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "clubmate-test",
		ExpirationMinutes: 15,
	}
}

type authFixture struct {
	svc     Service
	repo    *stubMemberRepo
	session *stubSessionManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	repo := newStubMemberRepo()
	sess := newStubSessionManager()
	svc, err := NewService(ServiceParams{
		MemberRepo:     repo,
		SessionManager: sess,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &authFixture{svc: svc, repo: repo, session: sess}
}

func (fx *authFixture) seedMember(t *testing.T, email, nickname, password string) *models.Member {
	t.Helper()

	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	member := &models.Member{
		ID:           uuid.New(),
		Email:        email,
		Nickname:     nickname,
		PasswordHash: hash,
		IsActive:     true,
	}
	fx.repo.add(member)
	return member
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s got %s (%v)", code, typed.Code(), err)
	}
}

func TestRegisterSuccess(t *testing.T) {
	fx := newAuthFixture(t)

	dto, err := fx.svc.Register(context.Background(), RegisterRequest{
		Email:    "New@Example.com",
		Nickname: "newbie",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if dto.Email != "new@example.com" {
		t.Fatalf("expected lowercased email, got %q", dto.Email)
	}
	if !dto.IsActive {
		t.Fatal("expected new member to be active")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	fx := newAuthFixture(t)
	fx.seedMember(t, "taken@example.com", "first", "pw")

	_, err := fx.svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Nickname: "second",
		Password: "irrelevant",
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestRegisterDuplicateNickname(t *testing.T) {
	fx := newAuthFixture(t)
	fx.seedMember(t, "a@example.com", "taken", "pw")

	_, err := fx.svc.Register(context.Background(), RegisterRequest{
		Email:    "b@example.com",
		Nickname: "taken",
		Password: "irrelevant",
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestLoginSuccess(t *testing.T) {
	fx := newAuthFixture(t)
	member := fx.seedMember(t, "login@example.com", "logger", "s3cret-pass")

	resp, err := fx.svc.Login(context.Background(), LoginRequest{
		Email:    "Login@Example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.Member == nil || resp.Member.ID != member.ID {
		t.Fatalf("unexpected member %+v", resp.Member)
	}
	if _, ok := fx.repo.lastLogins[member.ID]; !ok {
		t.Fatal("expected last login to be recorded")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.MemberID != member.ID {
		t.Fatalf("expected member id %s got %s", member.ID, claims.MemberID)
	}
	if _, ok := fx.session.sessions[claims.ID]; !ok {
		t.Fatal("expected session stored under the token jti")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	fx := newAuthFixture(t)
	fx.seedMember(t, "login@example.com", "logger", "right")

	_, err := fx.svc.Login(context.Background(), LoginRequest{
		Email:    "login@example.com",
		Password: "wrong",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLoginInactiveMember(t *testing.T) {
	fx := newAuthFixture(t)
	member := fx.seedMember(t, "gone@example.com", "ghost", "pw-123456")
	member.IsActive = false

	_, err := fx.svc.Login(context.Background(), LoginRequest{
		Email:    "gone@example.com",
		Password: "pw-123456",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestRefreshRotatesSession(t *testing.T) {
	fx := newAuthFixture(t)
	fx.seedMember(t, "login@example.com", "logger", "s3cret-pass")

	login, err := fx.svc.Login(context.Background(), LoginRequest{
		Email:    "login@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := fx.svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Fatal("expected a rotated refresh token")
	}

	// The old pair is burned by the rotation.
	_, err = fx.svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestRefreshInvalidToken(t *testing.T) {
	fx := newAuthFixture(t)
	fx.seedMember(t, "login@example.com", "logger", "s3cret-pass")

	login, err := fx.svc.Login(context.Background(), LoginRequest{
		Email:    "login@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = fx.svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: "forged",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLogoutRevokesSession(t *testing.T) {
	fx := newAuthFixture(t)
	fx.seedMember(t, "login@example.com", "logger", "s3cret-pass")

	login, err := fx.svc.Login(context.Background(), LoginRequest{
		Email:    "login@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := fx.svc.Logout(context.Background(), login.AccessToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(fx.session.revoked) != 1 {
		t.Fatalf("expected one revoked session, got %d", len(fx.session.revoked))
	}
	if len(fx.session.sessions) != 0 {
		t.Fatalf("expected no live sessions, got %d", len(fx.session.sessions))
	}
}
