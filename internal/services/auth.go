// Файл: internal/services/auth.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/config"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/service"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Me(ctx context.Context) (*dto.UserPublicDTO, error)
	ResolveActor(ctx context.Context, userID string) (types.Actor, error)
	EnsureAdmin(ctx context.Context, username, password string) error
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
	cfg        *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		logger:     logger,
		cfg:        cfg,
	}
}

func toUserPublic(u *entities.User) dto.UserPublicDTO {
	return dto.UserPublicDTO{ID: u.ID, Username: u.Username, Role: u.Role}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	logger := s.logger.With(zap.String("username", payload.Username))

	if err := s.checkLockout(ctx, payload.Username); err != nil {
		logger.Warn("login bloqueado por excesso de tentativas")
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.handleFailedLoginAttempt(ctx, payload.Username)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, payload.Username)
		logger.Info("senha incorreta")
		return nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, payload.Username)

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("login realizado", zap.String("user_id", user.ID))
	return &dto.AuthResponseDTO{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserPublic(user),
	}, nil
}

func (s *AuthService) Me(ctx context.Context) (*dto.UserPublicDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.UserPublicDTO{ID: actor.ID, Username: actor.Username, Role: actor.Role}, nil
}

// ResolveActor загружает пользователя из токена; удалённый пользователь - 401.
func (s *AuthService) ResolveActor(ctx context.Context, userID string) (types.Actor, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return types.Actor{}, apperrors.ErrUserNotFound
		}
		return types.Actor{}, err
	}
	return types.Actor{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// EnsureAdmin создаёт администратора по умолчанию, если его ещё нет.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &entities.User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  hash,
		Role:      constants.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		// Другой экземпляр успел создать его раньше.
		if errors.Is(err, apperrors.ErrConflict) {
			return nil
		}
		return err
	}
	s.logger.Info("usuário administrador padrão criado", zap.String("username", username))
	return nil
}

func (s *AuthService) checkLockout(ctx context.Context, username string) error {
	if s.cfg.MaxLoginAttempts <= 0 {
		return nil
	}
	attemptsStr, err := s.cacheRepo.Get(ctx, fmt.Sprintf(constants.CacheKeyLoginAttempts, username))
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			s.logger.Warn("cache indisponível ao verificar tentativas de login", zap.Error(err))
		}
		return nil
	}
	if attempts, _ := strconv.Atoi(attemptsStr); attempts >= s.cfg.MaxLoginAttempts {
		return apperrors.ErrTooManyAttempts
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, username string) {
	if s.cfg.MaxLoginAttempts <= 0 {
		return
	}
	key := fmt.Sprintf(constants.CacheKeyLoginAttempts, username)
	if _, err := s.cacheRepo.Incr(ctx, key, s.cfg.LockoutDuration); err != nil {
		s.logger.Warn("não foi possível registrar tentativa de login", zap.Error(err))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, username string) {
	if err := s.cacheRepo.Del(ctx, fmt.Sprintf(constants.CacheKeyLoginAttempts, username)); err != nil {
		s.logger.Warn("não foi possível limpar tentativas de login", zap.Error(err))
	}
}
