package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"chefcomanda/internal/config"
	"chefcomanda/internal/dto"
	"chefcomanda/internal/model"
	"chefcomanda/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	TipoPerfil      = "perfil"
	TipoFuncionario = "funcionario"
)

var (
	ErrCredenciaisInvalidas = errors.New("credenciais inválidas")
	ErrCPFInvalido          = errors.New("CPF inválido")
)

// AuthService covers both login paths: Perfil (email + senha, full account)
// and Funcionario (CPF + senha, simplified). The two identity kinds stay
// separate end to end — the JWT carries a tipo claim, never a merged id.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	LoginFuncionario(ctx context.Context, req dto.LoginFuncionarioRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CriarPerfil(ctx context.Context, req dto.CriarPerfilRequest) (*dto.IdentidadeResponse, error)
	CriarFuncionario(ctx context.Context, req dto.CriarFuncionarioRequest) (*dto.FuncionarioResponse, error)
	ListarFuncionarios(ctx context.Context, incluirInativos bool) ([]dto.FuncionarioResponse, error)
	AtualizarFuncionario(ctx context.Context, id uuid.UUID, req dto.AtualizarFuncionarioRequest) (*dto.FuncionarioResponse, error)
	DesativarFuncionario(ctx context.Context, id uuid.UUID) error
	ReativarFuncionario(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	perfilRepo      repository.PerfilRepository
	funcionarioRepo repository.FuncionarioRepository
	cfg             *config.Config
}

func NewAuthService(perfilRepo repository.PerfilRepository, funcionarioRepo repository.FuncionarioRepository, cfg *config.Config) AuthService {
	return &authService{perfilRepo: perfilRepo, funcionarioRepo: funcionarioRepo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	perfil, err := s.perfilRepo.BuscarPorEmail(ctx, req.Email)
	if err != nil || !perfil.Ativo {
		return nil, ErrCredenciaisInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(perfil.SenhaHash), []byte(req.Senha)); err != nil {
		return nil, ErrCredenciaisInvalidas
	}

	identidade := dto.IdentidadeResponse{
		ID:    perfil.ID.String(),
		Tipo:  TipoPerfil,
		Nome:  perfil.Nome,
		Papel: perfil.Papel,
	}
	return s.buildLoginResponse(identidade)
}

// LoginFuncionario is the tablet login path: CPF digits + senha.
func (s *authService) LoginFuncionario(ctx context.Context, req dto.LoginFuncionarioRequest) (*dto.LoginResponse, error) {
	cpf := NormalizarCPF(req.CPF)
	if !ValidarCPF(cpf) {
		return nil, ErrCPFInvalido
	}

	funcionario, err := s.funcionarioRepo.BuscarPorCPF(ctx, cpf)
	if err != nil || !funcionario.Ativo {
		return nil, ErrCredenciaisInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(funcionario.SenhaHash), []byte(req.Senha)); err != nil {
		return nil, ErrCredenciaisInvalidas
	}

	identidade := dto.IdentidadeResponse{
		ID:    funcionario.ID.String(),
		Tipo:  TipoFuncionario,
		Nome:  funcionario.Nome,
		Papel: funcionario.Papel,
	}
	return s.buildLoginResponse(identidade)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token inválido ou expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims inválidos")
	}
	idStr, _ := claims["user_id"].(string)
	tipo, _ := claims["tipo"].(string)
	uid, err := uuid.Parse(idStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	var identidade dto.IdentidadeResponse
	switch tipo {
	case TipoPerfil:
		perfil, err := s.perfilRepo.BuscarPorID(ctx, uid)
		if err != nil || !perfil.Ativo {
			return nil, errors.New("perfil não encontrado ou inativo")
		}
		identidade = dto.IdentidadeResponse{ID: perfil.ID.String(), Tipo: TipoPerfil, Nome: perfil.Nome, Papel: perfil.Papel}
	case TipoFuncionario:
		funcionario, err := s.funcionarioRepo.BuscarPorID(ctx, uid)
		if err != nil || !funcionario.Ativo {
			return nil, errors.New("funcionário não encontrado ou inativo")
		}
		identidade = dto.IdentidadeResponse{ID: funcionario.ID.String(), Tipo: TipoFuncionario, Nome: funcionario.Nome, Papel: funcionario.Papel}
	default:
		return nil, errors.New("token mal formado")
	}

	return s.buildLoginResponse(identidade)
}

func (s *authService) CriarPerfil(ctx context.Context, req dto.CriarPerfilRequest) (*dto.IdentidadeResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), 12)
	if err != nil {
		return nil, err
	}
	papel := req.Papel
	if papel == "" {
		papel = model.PapelAdmin
	}
	perfil := &model.Perfil{
		Nome:      req.Nome,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		SenhaHash: string(hash),
		Papel:     papel,
		Ativo:     true,
	}
	if err := s.perfilRepo.Criar(ctx, perfil); err != nil {
		return nil, err
	}
	return &dto.IdentidadeResponse{
		ID:    perfil.ID.String(),
		Tipo:  TipoPerfil,
		Nome:  perfil.Nome,
		Papel: perfil.Papel,
	}, nil
}

func (s *authService) CriarFuncionario(ctx context.Context, req dto.CriarFuncionarioRequest) (*dto.FuncionarioResponse, error) {
	cpf := NormalizarCPF(req.CPF)
	if !ValidarCPF(cpf) {
		return nil, ErrCPFInvalido
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), 12)
	if err != nil {
		return nil, err
	}
	funcionario := &model.Funcionario{
		Nome:      req.Nome,
		CPF:       cpf,
		SenhaHash: string(hash),
		Papel:     req.Papel,
		Ativo:     true,
	}
	if err := s.funcionarioRepo.Criar(ctx, funcionario); err != nil {
		return nil, err
	}
	return funcionarioToResponse(funcionario), nil
}

func (s *authService) ListarFuncionarios(ctx context.Context, incluirInativos bool) ([]dto.FuncionarioResponse, error) {
	funcionarios, err := s.funcionarioRepo.Listar(ctx, incluirInativos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FuncionarioResponse, len(funcionarios))
	for i := range funcionarios {
		resp[i] = *funcionarioToResponse(&funcionarios[i])
	}
	return resp, nil
}

func (s *authService) AtualizarFuncionario(ctx context.Context, id uuid.UUID, req dto.AtualizarFuncionarioRequest) (*dto.FuncionarioResponse, error) {
	funcionario, err := s.funcionarioRepo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, errors.New("funcionário não encontrado")
	}
	if req.Nome != "" {
		funcionario.Nome = req.Nome
	}
	if req.Papel != "" {
		funcionario.Papel = req.Papel
	}
	if req.Senha != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), 12)
		if err != nil {
			return nil, err
		}
		funcionario.SenhaHash = string(hash)
	}
	if err := s.funcionarioRepo.Atualizar(ctx, funcionario); err != nil {
		return nil, err
	}
	return funcionarioToResponse(funcionario), nil
}

func (s *authService) DesativarFuncionario(ctx context.Context, id uuid.UUID) error {
	return s.funcionarioRepo.Desativar(ctx, id)
}

func (s *authService) ReativarFuncionario(ctx context.Context, id uuid.UUID) error {
	return s.funcionarioRepo.Reativar(ctx, id)
}

func (s *authService) buildLoginResponse(identidade dto.IdentidadeResponse) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(identidade, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(identidade, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Identidade:   identidade,
	}, nil
}

func (s *authService) generateToken(identidade dto.IdentidadeResponse, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": identidade.ID,
		"nome":    identidade.Nome,
		"tipo":    identidade.Tipo,
		"papel":   identidade.Papel,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func funcionarioToResponse(f *model.Funcionario) *dto.FuncionarioResponse {
	return &dto.FuncionarioResponse{
		ID:    f.ID.String(),
		Nome:  f.Nome,
		CPF:   f.CPF,
		Papel: f.Papel,
		Ativo: f.Ativo,
	}
}

// NormalizarCPF strips everything but digits.
func NormalizarCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidarCPF checks length, the all-same-digit degenerate cases and both
// verification digits of a Brazilian CPF.
func ValidarCPF(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}
	todosIguais := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			todosIguais = false
			break
		}
	}
	if todosIguais {
		return false
	}

	digito := func(limite int) int {
		soma := 0
		for i := 0; i < limite; i++ {
			soma += int(cpf[i]-'0') * (limite + 1 - i)
		}
		resto := (soma * 10) % 11
		if resto == 10 {
			resto = 0
		}
		return resto
	}

	return digito(9) == int(cpf[9]-'0') && digito(10) == int(cpf[10]-'0')
}
