package echoapi

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tujenge/mipango/core"
)

// Roles
const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

const authCookieName = "token"

// Claims represents the authorization claims transmitted via a JWT.
// There are no user accounts; the role is the whole identity.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

func (c *Claims) IsAdmin() bool { return c.Role == RoleAdmin }

func NewClaims(conf *core.Config, role string) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    conf.AppName,
			Subject:   role,
			ExpiresAt: jwt.NewNumericDate(now.Add(conf.Server.TokenExpirationDelta)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	return ss, errors.Wrap(err, "signing token")
}

func parseToken(conf *core.Config, raw string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(conf.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Wrap(err, "parsing token")
	}
	return claims, nil
}

// requestToken pulls the raw token off the auth cookie, falling back to a
// Bearer Authorization header.
func requestToken(ctx echo.Context) string {
	if cookie, err := ctx.Cookie(authCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// adminMiddleware rejects any request not carrying a valid admin token.
// Guest tokens are read-only by construction so they are rejected too.
func adminMiddleware(conf *core.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			raw := requestToken(ctx)
			if raw == "" {
				return errUnauthorized
			}
			claims, err := parseToken(conf, raw)
			if err != nil || !claims.IsAdmin() {
				return errUnauthorized
			}
			return next(ctx)
		}
	}
}

// API

type authApi struct {
	conf *core.Config
}

func registerAuthAPI(g *echo.Group, conf *core.Config) {
	api := authApi{conf: conf}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/guest", api.guest)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(data.Password), []byte(api.conf.AdminPassword)) != 1 {
		return errAuthenticationFailed
	}
	return api.respondWithToken(ctx, RoleAdmin)
}

func (api *authApi) guest(ctx echo.Context) error {
	return api.respondWithToken(ctx, RoleGuest)
}

func (api *authApi) respondWithToken(ctx echo.Context, role string) error {
	claims := NewClaims(api.conf, role)
	token, err := GenerateToken(api.conf, claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	ctx.SetCookie(&http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		Expires:  claims.ExpiresAt.Time,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Role: role})
}

type (
	LoginRequest struct {
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
)

func (lr *LoginRequest) Validate() error {
	return core.Validate.Struct(lr)
}
