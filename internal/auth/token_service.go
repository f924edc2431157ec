package auth

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/policy"
)

// ErrInvalidToken covers every validation failure: malformed, expired,
// bad signature, wrong issuer, wrong audience. Callers never learn which;
// validation fails closed.
var ErrInvalidToken = errors.New("invalid token")

// TokenService mints and validates the signed bearer tokens that carry an
// identity across stateless requests. There is no revocation list: a token
// stays valid for its full TTL even if the account is deactivated.
type TokenService interface {
	Issue(user *models.User) (token string, expiresAt time.Time, err error)
	Validate(token string) (policy.Actor, error)
}

type tokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	audience   string
	ttl        time.Duration
}

func NewTokenService(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer, audience string, ttl time.Duration) TokenService {
	return &tokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		audience:   audience,
		ttl:        ttl,
	}
}

func (s *tokenService) Issue(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := jwt.MapClaims{
		"iss":  s.issuer,
		"aud":  s.audience,
		"sub":  user.ID.Hex(),
		"role": user.Role.String(),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
		"jti":  uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *tokenService) Validate(tokenString string) (policy.Actor, error) {
	token, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.publicKey, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return policy.Actor{}, jwt.ErrTokenExpired
		}
		return policy.Actor{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return policy.Actor{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return policy.Actor{}, ErrInvalidToken
	}
	subjectID, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return policy.Actor{}, ErrInvalidToken
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return policy.Actor{}, ErrInvalidToken
	}
	role, err := models.ParseRole(roleStr)
	if err != nil {
		return policy.Actor{}, ErrInvalidToken
	}

	return policy.Actor{ID: subjectID, Role: role}, nil
}
