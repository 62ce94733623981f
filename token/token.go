package token

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

const expirationTime = 24 * time.Hour

var signingKey []byte

// Init loads the process-wide signing key. The key must come from the
// environment; there is no built-in fallback secret.
func Init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	signingKey = []byte(secret)
}

// SigningKey returns the key shared with the JWT middleware.
func SigningKey() []byte {
	return signingKey
}

// Claims carries the identity embedded in a token.
type Claims struct {
	UserID   uint
	Username string
	Role     string
}

// GenerateToken issues a signed token for a user. Expires 24 hours after issuance.
func GenerateToken(userID uint, username, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      username,
		"userId":   userID,
		"username": username,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(expirationTime).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(signingKey)
}

// ValidateToken reports whether the token is well formed and carries a valid
// signature. Any parse or signature failure yields false, never an error.
func ValidateToken(tokenString string) bool {
	_, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return signingKey, nil
	})
	return err == nil
}

// ValidateTokenAndRole reports whether the token is valid, unexpired, and
// carries the required role. The role comparison is case-insensitive.
func ValidateTokenAndRole(tokenString, requiredRole string) bool {
	if !ValidateToken(tokenString) || IsTokenExpired(tokenString) {
		return false
	}
	role, err := ExtractRole(tokenString)
	if err != nil {
		return false
	}
	return strings.EqualFold(role, requiredRole)
}

// ExtractClaims decodes the token's claims without re-verifying the
// signature; callers are expected to have validated the token already.
func ExtractClaims(tokenString string) (Claims, error) {
	mapClaims, err := decode(tokenString)
	if err != nil {
		return Claims{}, err
	}

	userID, err := userIDFromClaims(mapClaims)
	if err != nil {
		return Claims{}, err
	}
	username, _ := mapClaims["username"].(string)
	role, _ := mapClaims["role"].(string)

	return Claims{UserID: userID, Username: username, Role: role}, nil
}

// ExtractUsername returns the username claim.
func ExtractUsername(tokenString string) (string, error) {
	claims, err := ExtractClaims(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

// ExtractRole returns the role claim.
func ExtractRole(tokenString string) (string, error) {
	mapClaims, err := decode(tokenString)
	if err != nil {
		return "", err
	}
	role, ok := mapClaims["role"].(string)
	if !ok {
		return "", fmt.Errorf("no role found in claims")
	}
	return role, nil
}

// ExtractUserID returns the userId claim.
func ExtractUserID(tokenString string) (uint, error) {
	mapClaims, err := decode(tokenString)
	if err != nil {
		return 0, err
	}
	return userIDFromClaims(mapClaims)
}

// IsTokenExpired compares the embedded expiry against the current time.
// A token that cannot be decoded is treated as expired.
func IsTokenExpired(tokenString string) bool {
	mapClaims, err := decode(tokenString)
	if err != nil {
		return true
	}
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return true
	}
	return time.Unix(int64(exp), 0).Before(time.Now())
}

func decode(tokenString string) (jwt.MapClaims, error) {
	tok, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}
	mapClaims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", tok.Claims)
	}
	return mapClaims, nil
}

// userIDFromClaims handles the userId claim arriving in different numeric
// encodings and normalizes to uint.
func userIDFromClaims(claims jwt.MapClaims) (uint, error) {
	idVal := claims["userId"]
	if idVal == nil {
		return 0, fmt.Errorf("no userId found in claims")
	}

	switch v := idVal.(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse userId string: %v", err)
		}
		return uint(parsed), nil
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	case int64:
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported userId type: %T", v)
	}
}
