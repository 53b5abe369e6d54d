// Package auth содержит логику бизнес-уровня для регистрации,
// входа и проверки пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookvault/bookvault/internal/lib/jwt"
	"github.com/bookvault/bookvault/internal/lib/password"
	"github.com/bookvault/bookvault/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	// Дубликат username/email возвращается как models.ErrUserExists.
	CreateUser(ctx context.Context, user models.User) (int64, error)

	// UserExists проверяет, занят ли username или email.
	UserExists(ctx context.Context, username, email string) (bool, error)

	// GetUserByEmail возвращает пользователя по email или models.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по ID или models.ErrUserNotFound.
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

// Service отвечает за регистрацию, авторизацию и проверку текущего пользователя.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя и сразу выдаёт ему токен сессии.
//
// Проверка занятости username/email до вставки — оптимизация ради быстрого
// понятного ответа. Она может быть проиграна конкурентной регистрацией,
// поэтому ErrUserExists из CreateUser обрабатывается той же веткой.
func (s *Service) Register(ctx context.Context, username, email, rawPassword, role string) (string, *models.PublicUser, error) {
	const op = "services.auth.Register"

	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return "", nil, fmt.Errorf("%s: unknown role %q", op, role)
	}

	exists, err := s.users.UserExists(ctx, username, email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return "", nil, fmt.Errorf("%s: %w", op, models.ErrUserExists)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	user.ID = id

	token, err := s.jwtMaker.GenerateToken(id)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	pub := user.Public()
	return token, &pub, nil
}

// Login проверяет пароль пользователя и генерирует свежий JWT.
//
// Неизвестный email и неверный пароль схлопываются в один
// ErrInvalidCredentials: по ответу нельзя перечислять учётные записи.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.PublicUser, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	pub := user.Public()
	return token, &pub, nil
}

// VerifyUser повторно читает публичные поля аутентифицированного пользователя.
// Используется клиентами для подтверждения валидности сессии и обновления роли.
func (s *Service) VerifyUser(ctx context.Context, userID int64) (*models.PublicUser, error) {
	const op = "services.auth.VerifyUser"

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pub := user.Public()
	return &pub, nil
}

// GetRole возвращает текущую роль пользователя из хранилища.
// Роль намеренно не доверяется токену: перечитывание на каждом
// привилегированном запросе ограничивает окно устаревшей роли одним запросом.
func (s *Service) GetRole(ctx context.Context, userID int64) (string, error) {
	const op = "services.auth.GetRole"

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return user.Role, nil
}
