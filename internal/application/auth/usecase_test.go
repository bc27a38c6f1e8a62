package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ellaliza/stockley/internal/application/auth"
	"github.com/ellaliza/stockley/internal/application/dto"
	"github.com/ellaliza/stockley/internal/domain"
	"github.com/ellaliza/stockley/internal/domain/entity"
	pkgjwt "github.com/ellaliza/stockley/pkg/jwt"
)

// fakeUserRepo repo de usuarios en memoria para los tests de auth.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	for _, ex := range r.users {
		if ex.Username == u.Username {
			return domain.ErrUsernameAlreadyExists
		}
		if ex.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

const testSecret = "secret-para-tests"

func newAuthUC(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "stockley-test",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_HasheaPasswordYAsignaRolRegular(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "supersecreta1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana", out.Username)
	assert.Equal(t, entity.PlatformRoleRegular, out.PlatformRole)
	assert.Equal(t, "ana", out.FullName, "sin full_name debe usarse el username")

	stored, err := repo.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "supersecreta1", stored.PasswordHash, "la password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecreta1")))
}

func TestRegisterUser_UsernameDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "supersecreta1"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Username: "ana", Email: "otra@example.com", Password: "supersecreta1"})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "supersecreta1"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Username: "beto", Email: "ana@example.com", Password: "supersecreta1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenConClaimsDelUsuario(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	reg, err := uc.RegisterUser(dto.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "supersecreta1"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Username: "ana", Password: "supersecreta1"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, reg.ID, out.User.ID)

	userID, username, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, "ana", username)
	assert.Equal(t, entity.PlatformRoleRegular, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "supersecreta1"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "ana", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())

	_, err := uc.Login(dto.LoginRequest{Username: "fantasma", Password: "loquesea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil propio
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProfile_RehasheaPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	reg, err := uc.RegisterUser(dto.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "supersecreta1"})
	require.NoError(t, err)

	nueva := "otramuysecreta2"
	nombre := "Ana Torres"
	out, err := uc.UpdateProfile(reg.ID, dto.UpdateUserRequest{FullName: &nombre, Password: &nueva})
	require.NoError(t, err)
	assert.Equal(t, "Ana Torres", out.FullName)

	// La password vieja deja de servir, la nueva sí
	_, err = uc.Login(dto.LoginRequest{Username: "ana", Password: "supersecreta1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(dto.LoginRequest{Username: "ana", Password: nueva})
	assert.NoError(t, err)
}

func TestMe_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())

	_, err := uc.Me("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
