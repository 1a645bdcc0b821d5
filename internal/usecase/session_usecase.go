package usecase

import (
	"context"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// ログイン情報（トークン・ユーザー名）の管理
type SessionUsecase struct {
	creds     repo.CredentialRepository
	auth      repo.AuthGateway
	validator InputValidator
	gate      *OperationGate
	clock     Clock
	log       *logrus.Entry
}

// DI
func NewSessionUsecase(
	creds repo.CredentialRepository,
	auth repo.AuthGateway,
	validator InputValidator,
	gate *OperationGate,
	clock Clock,
	log *logrus.Entry,
) *SessionUsecase {
	return &SessionUsecase{
		creds:     creds,
		auth:      auth,
		validator: validator,
		gate:      gate,
		clock:     clock,
		log:       log.WithField("component", "session"),
	}
}

// バックエンドでログインしてトークンを保存する
func (u *SessionUsecase) Login(ctx context.Context, username string, password string) (model.Credential, error) {
	username = strings.TrimSpace(username)
	if err := u.validator.ValidateLogin(username, password); err != nil {
		return model.Credential{}, err
	}

	token, err := u.auth.Login(ctx, username, password)
	if err != nil {
		return model.Credential{}, err
	}

	return u.SignIn(ctx, token, username)
}

// 外で取得したトークンを保存する
func (u *SessionUsecase) SignIn(ctx context.Context, token string, username string) (model.Credential, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.Credential{}, NewValidationError("token", "required")
	}

	cred := model.Credential{Token: token, Username: strings.TrimSpace(username)}
	if err := u.checkExpiry(token); err != nil {
		return model.Credential{}, err
	}
	if err := u.creds.Save(ctx, cred); err != nil {
		return model.Credential{}, err
	}

	u.log.WithField("username", cred.Username).Info("signed in")
	return cred, nil
}

// 保存済みトークン。
// 無い・期限切れなら通信せずに AuthError。
func (u *SessionUsecase) Token(ctx context.Context) (string, error) {
	cred, err := u.creds.Load(ctx)
	if err != nil {
		return "", err
	}
	if !cred.Present() {
		return "", NewAuthError("credential not found")
	}
	if err := u.checkExpiry(cred.Token); err != nil {
		return "", err
	}
	return cred.Token, nil
}

// 表示用
func (u *SessionUsecase) Current(ctx context.Context) (model.Credential, error) {
	return u.creds.Load(ctx)
}

// ログアウト：カートを空にしてトークンを消す。
// 予約済みの在庫は戻さない。
func (u *SessionUsecase) Logout(ctx context.Context, cart CartClearer) error {
	release, err := u.gate.Acquire("logout")
	if err != nil {
		return err
	}
	defer release()

	if err := cart.Clear(ctx); err != nil {
		return err
	}
	if err := u.creds.Delete(ctx); err != nil {
		return err
	}

	u.log.Info("signed out")
	return nil
}

// JWTとして読めるトークンだけ exp を見る（署名は検証しない）。
// 読めないトークンは不透明なものとしてそのまま通す。
func (u *SessionUsecase) checkExpiry(token string) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	if !claims.VerifyExpiresAt(u.clock.Now().Unix(), false) {
		return NewAuthError("credential expired")
	}
	return nil
}
