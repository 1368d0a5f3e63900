package service

import (
	"context"
	"testing"

	"chefcomanda/internal/config"
	"chefcomanda/internal/dto"
	"chefcomanda/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func buildAuthSvc() (AuthService, *stubPerfilRepo, *stubFuncionarioRepo) {
	perfis := newStubPerfilRepo()
	funcionarios := newStubFuncionarioRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(perfis, funcionarios, cfg), perfis, funcionarios
}

func hashSenha(t *testing.T, senha string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestValidarCPF(t *testing.T) {
	// valid CPFs with correct check digits
	assert.True(t, ValidarCPF("52998224725"))
	assert.True(t, ValidarCPF("11144477735"))

	// wrong check digit
	assert.False(t, ValidarCPF("52998224724"))
	// degenerate all-same-digit sequences pass the mod-11 math but are invalid
	assert.False(t, ValidarCPF("11111111111"))
	assert.False(t, ValidarCPF("00000000000"))
	// wrong length
	assert.False(t, ValidarCPF("5299822472"))
	assert.False(t, ValidarCPF(""))
}

func TestNormalizarCPF(t *testing.T) {
	assert.Equal(t, "52998224725", NormalizarCPF("529.982.247-25"))
	assert.Equal(t, "52998224725", NormalizarCPF("52998224725"))
	assert.Equal(t, "", NormalizarCPF("abc"))
}

func TestLoginPerfil(t *testing.T) {
	svc, perfis, _ := buildAuthSvc()
	require.NoError(t, perfis.Criar(context.Background(), &model.Perfil{
		Nome:      "Dono",
		Email:     "dono@restaurante.com",
		SenhaHash: hashSenha(t, "segredo123"),
		Papel:     "admin",
		Ativo:     true,
	}))

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "dono@restaurante.com",
		Senha: "segredo123",
	})
	require.NoError(t, err)
	assert.Equal(t, TipoPerfil, resp.Identidade.Tipo)
	assert.Equal(t, "admin", resp.Identidade.Papel)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// token carries the dual-identity tipo claim
	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, TipoPerfil, claims["tipo"])

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "dono@restaurante.com",
		Senha: "errada",
	})
	assert.ErrorIs(t, err, ErrCredenciaisInvalidas)
}

func TestLoginFuncionario(t *testing.T) {
	svc, _, funcionarios := buildAuthSvc()
	require.NoError(t, funcionarios.Criar(context.Background(), &model.Funcionario{
		Nome:      "Maria Souza",
		CPF:       "52998224725",
		SenhaHash: hashSenha(t, "1234"),
		Papel:     "garcom",
		Ativo:     true,
	}))

	// formatted CPF is normalized before lookup
	resp, err := svc.LoginFuncionario(context.Background(), dto.LoginFuncionarioRequest{
		CPF:   "529.982.247-25",
		Senha: "1234",
	})
	require.NoError(t, err)
	assert.Equal(t, TipoFuncionario, resp.Identidade.Tipo)
	assert.Equal(t, "garcom", resp.Identidade.Papel)

	_, err = svc.LoginFuncionario(context.Background(), dto.LoginFuncionarioRequest{
		CPF:   "111.111.111-11",
		Senha: "1234",
	})
	assert.ErrorIs(t, err, ErrCPFInvalido)

	_, err = svc.LoginFuncionario(context.Background(), dto.LoginFuncionarioRequest{
		CPF:   "529.982.247-25",
		Senha: "0000",
	})
	assert.ErrorIs(t, err, ErrCredenciaisInvalidas)
}

func TestLoginFuncionarioInativo(t *testing.T) {
	svc, _, funcionarios := buildAuthSvc()
	f := &model.Funcionario{
		Nome:      "Ex Funcionário",
		CPF:       "52998224725",
		SenhaHash: hashSenha(t, "1234"),
		Papel:     "caixa",
		Ativo:     true,
	}
	require.NoError(t, funcionarios.Criar(context.Background(), f))
	require.NoError(t, funcionarios.Desativar(context.Background(), f.ID))

	_, err := svc.LoginFuncionario(context.Background(), dto.LoginFuncionarioRequest{
		CPF:   "52998224725",
		Senha: "1234",
	})
	assert.ErrorIs(t, err, ErrCredenciaisInvalidas)
}

func TestRefreshMantemIdentidade(t *testing.T) {
	svc, _, funcionarios := buildAuthSvc()
	require.NoError(t, funcionarios.Criar(context.Background(), &model.Funcionario{
		Nome:      "João Lima",
		CPF:       "11144477735",
		SenhaHash: hashSenha(t, "1234"),
		Papel:     "cozinha",
		Ativo:     true,
	}))

	login, err := svc.LoginFuncionario(context.Background(), dto.LoginFuncionarioRequest{
		CPF:   "11144477735",
		Senha: "1234",
	})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, login.Identidade, renovado.Identidade)

	_, err = svc.Refresh(context.Background(), "nem-um-token")
	assert.Error(t, err)
}

func TestCriarFuncionarioCPFInvalido(t *testing.T) {
	svc, _, _ := buildAuthSvc()
	_, err := svc.CriarFuncionario(context.Background(), dto.CriarFuncionarioRequest{
		Nome:  "Fulano",
		CPF:   "123",
		Senha: "1234",
		Papel: "garcom",
	})
	assert.ErrorIs(t, err, ErrCPFInvalido)
}
