package middleware

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/devillage/teamproject/backend/internal/repositories"
)

// FirebaseVerifier accepts Firebase ID tokens for users that already signed
// in once through /auth/firebase-login.
func FirebaseVerifier(authClient *auth.Client, users repositories.UserRepository) TokenVerifier {
	return func(ctx context.Context, idToken string) (uint, error) {
		token, err := authClient.VerifyIDToken(ctx, idToken)
		if err != nil {
			return 0, fmt.Errorf("invalid or expired ID token: %w", err)
		}
		user, err := users.GetUserByFirebaseUID(ctx, token.UID)
		if err != nil {
			return 0, fmt.Errorf("no user linked to firebase uid %s: %w", token.UID, err)
		}
		return user.ID, nil
	}
}
