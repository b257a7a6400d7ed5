package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"messenger/model"
	"messenger/policy"

	jwt "github.com/golang-jwt/jwt/v4"
	uuid "github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenDetails ...
type TokenDetails struct {
	AccessToken string
	AccessUUID  string
	AtExpires   int64
}

// AccessDetails is what a verified access token says about its bearer.
type AccessDetails struct {
	AccessUUID string
	UserID     uint
	UserName   string
	Scopes     []string
}

// User returns the bearer as seen by the authorization policy.
func (a *AccessDetails) User() policy.User {
	return policy.User{ID: a.UserID, Scopes: a.Scopes}
}

// AccessClaims ...
type AccessClaims struct {
	Authorized bool     `json:"authorized"`
	AccessUUID string   `json:"access_uuid"`
	UserID     uint     `json:"user_id"`
	UserName   string   `json:"user_name"`
	Scopes     []string `json:"scopes"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Scopes lists the scopes granted to a user's tokens.
func Scopes(user *model.User) []string {
	if user.IsAdmin() {
		return []string{policy.ScopeAdmin}
	}
	return []string{}
}

// CreateToken ...
func (t *TokenService) CreateToken(user *model.User) (*TokenDetails, error) {
	now := time.Now()
	td := &TokenDetails{}
	td.AtExpires = now.Add(t.ttl).Unix()
	td.AccessUUID = uuid.New().String()

	claims := AccessClaims{
		Authorized: true,
		AccessUUID: td.AccessUUID,
		UserID:     user.ID,
		UserName:   user.Username,
		Scopes:     Scopes(user),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Unix(td.AtExpires, 0)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	var err error
	at := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	td.AccessToken, err = at.SignedString(t.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return td, nil
}

// ExtractToken ...
func (t *TokenService) ExtractToken(r *http.Request) string {
	bearToken := r.Header.Get("Authorization")
	//normally Authorization the_token_xxx
	strArr := strings.Split(bearToken, " ")
	if len(strArr) == 2 {
		return strArr[1]
	}
	return ""
}

// VerifyToken ...
func (t *TokenService) VerifyToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		//Make sure that the token method conform to "SigningMethodHMAC"
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	if !token.Valid || !claims.Authorized || claims.AccessUUID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractTokenMetadata ...
func (t *TokenService) ExtractTokenMetadata(r *http.Request) (*AccessDetails, error) {
	claims, err := t.VerifyToken(t.ExtractToken(r))
	if err != nil {
		return nil, err
	}
	return &AccessDetails{
		AccessUUID: claims.AccessUUID,
		UserID:     claims.UserID,
		UserName:   claims.UserName,
		Scopes:     claims.Scopes,
	}, nil
}
