package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Subject reads the user id carried by token without verifying it. The
// result is for log correlation only and must never gate access.
func Subject(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	for _, key := range []string{"user_id", "sub"} {
		switch v := claims[key].(type) {
		case string:
			return v
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
