package utils

import (
	"context"

	"inventory-system/pkg/contextkeys"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

// WithActor кладёт аутентифицированного пользователя в контекст запроса.
func WithActor(ctx context.Context, actor types.Actor) context.Context {
	return context.WithValue(ctx, contextkeys.ActorKey, actor)
}

func GetActorFromCtx(ctx context.Context) (types.Actor, error) {
	actor, ok := ctx.Value(contextkeys.ActorKey).(types.Actor)
	if !ok || actor.ID == "" {
		return types.Actor{}, apperrors.ErrUserIDNotFoundInContext
	}
	return actor, nil
}
