package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/name-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/name-tracker-api/internal/config"
	"github.com/vfg2006/name-tracker-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (Authenticator, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	userRepo := mocks.NewMockUserRepository(ctrl)

	cfg := &config.Config{
		SecretKey: "test-secret-key",
	}

	return NewService(userRepo, cfg), userRepo
}

func hashedPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_LoginUser(t *testing.T) {
	t.Run("Login válido gera token verificável", func(t *testing.T) {
		service, userRepo := newAuthService(t)

		userRepo.EXPECT().
			GetUserByEmail("rob@example.com").
			Return(&domain.User{
				ID:           7,
				Name:         "Rob",
				Email:        "rob@example.com",
				PasswordHash: hashedPassword(t, "Sup3rSecret"),
				Active:       true,
				RoleID:       2,
			}, nil)

		token, err := service.LoginUser("Rob@Example.com ", "Sup3rSecret")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		// O token emitido precisa validar com as mesmas claims
		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, 2, claims.UserRoleID)
		assert.Equal(t, "rob@example.com", claims.UserEmail)
	})

	t.Run("Senha incorreta retorna credenciais inválidas", func(t *testing.T) {
		service, userRepo := newAuthService(t)

		userRepo.EXPECT().
			GetUserByEmail("rob@example.com").
			Return(&domain.User{
				ID:           7,
				Email:        "rob@example.com",
				PasswordHash: hashedPassword(t, "Sup3rSecret"),
				Active:       true,
			}, nil)

		token, err := service.LoginUser("rob@example.com", "errada")
		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, 7, authErr.UserID)
	})

	t.Run("Usuário desconhecido retorna não encontrado", func(t *testing.T) {
		service, userRepo := newAuthService(t)

		userRepo.EXPECT().
			GetUserByEmail("ghost@example.com").
			Return(nil, nil)

		_, err := service.LoginUser("ghost@example.com", "qualquer")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Usuário inativo não loga", func(t *testing.T) {
		service, userRepo := newAuthService(t)

		userRepo.EXPECT().
			GetUserByEmail("rob@example.com").
			Return(&domain.User{
				ID:           7,
				Email:        "rob@example.com",
				PasswordHash: hashedPassword(t, "Sup3rSecret"),
				Active:       false,
			}, nil)

		_, err := service.LoginUser("rob@example.com", "Sup3rSecret")
		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("Email e senha são obrigatórios", func(t *testing.T) {
		service, _ := newAuthService(t)

		_, err := service.LoginUser("", "")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_ValidateToken(t *testing.T) {
	service, _ := newAuthService(t)

	t.Run("Token adulterado é rejeitado", func(t *testing.T) {
		claims, err := service.ValidateToken("isso.não é.um token")
		assert.Nil(t, claims)
		assert.Error(t, err)
	})

	t.Run("Token vazio é rejeitado", func(t *testing.T) {
		claims, err := service.ValidateToken("")
		assert.Nil(t, claims)
		assert.Error(t, err)
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	service, _ := newAuthService(t)

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "Senha forte passa", password: "Sup3rSecret", valid: true},
		{name: "Curta demais é rejeitada", password: "Ab1", valid: false},
		{name: "Sem maiúscula é rejeitada", password: "sup3rsecret", valid: false},
		{name: "Sem minúscula é rejeitada", password: "SUP3RSECRET", valid: false},
		{name: "Sem número é rejeitada", password: "SuperSecret", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrWeakPassword)
			}
		})
	}
}

func TestService_CreateUser(t *testing.T) {
	t.Run("Novo usuário entra inativo, com senha hasheada e papel viewer", func(t *testing.T) {
		service, userRepo := newAuthService(t)

		userRepo.EXPECT().
			GetUserByEmail("rob@example.com").
			Return(nil, nil)

		userRepo.EXPECT().
			CreateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) (*domain.User, error) {
				assert.False(t, user.Active)
				assert.Equal(t, 3, user.RoleID)
				// A senha nunca chega em claro no repositório
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Sup3rSecret")))
				return user, nil
			})

		user, err := service.CreateUser(&domain.User{
			Name:         "Rob",
			Lastname:     "Roberts",
			Email:        "Rob@Example.com",
			PasswordHash: "Sup3rSecret",
		})
		require.NoError(t, err)
		assert.Equal(t, "rob@example.com", user.Email)
	})

	t.Run("Email já cadastrado é rejeitado", func(t *testing.T) {
		service, userRepo := newAuthService(t)

		userRepo.EXPECT().
			GetUserByEmail("rob@example.com").
			Return(&domain.User{ID: 7, Email: "rob@example.com"}, nil)

		_, err := service.CreateUser(&domain.User{
			Name:         "Rob",
			Lastname:     "Roberts",
			Email:        "rob@example.com",
			PasswordHash: "Sup3rSecret",
		})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Campos obrigatórios ausentes são rejeitados", func(t *testing.T) {
		service, _ := newAuthService(t)

		_, err := service.CreateUser(&domain.User{Name: "Rob"})
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}
