package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	AdminIDKey contextKey = "admin_id"
	GymIDKey   contextKey = "gym_id"
	TokenKey   contextKey = "token"
)

func SetSessionContext(ctx context.Context, adminID, gymID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, AdminIDKey, adminID.String())
	ctx = context.WithValue(ctx, GymIDKey, gymID.String())
	return ctx
}

func GetAdminIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	return uuidFromContext(ctx, AdminIDKey)
}

func GetGymIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	return uuidFromContext(ctx, GymIDKey)
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func uuidFromContext(ctx context.Context, key contextKey) (uuid.UUID, bool) {
	val := ctx.Value(key)
	if val == nil {
		return uuid.Nil, false
	}

	str, ok := val.(string)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}
