package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email string `json:"email"    validate:"required,email"`
	Senha string `json:"senha"    validate:"required,min=4"`
}

// LoginFuncionarioRequest is the simplified employee login: CPF + senha.
type LoginFuncionarioRequest struct {
	CPF   string `json:"cpf"   validate:"required"`
	Senha string `json:"senha" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CriarPerfilRequest struct {
	Nome  string `json:"nome"  validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=8"`
	Papel string `json:"papel" validate:"omitempty,oneof=admin gerente"`
}

type CriarFuncionarioRequest struct {
	Nome  string `json:"nome"  validate:"required,min=2,max=100"`
	CPF   string `json:"cpf"   validate:"required"`
	Senha string `json:"senha" validate:"required,min=4"`
	Papel string `json:"papel" validate:"required,oneof=gerente caixa garcom cozinha"`
}

type AtualizarFuncionarioRequest struct {
	Nome  string `json:"nome"  validate:"omitempty,min=2,max=100"`
	Papel string `json:"papel" validate:"omitempty,oneof=gerente caixa garcom cozinha"`
	Senha string `json:"senha" validate:"omitempty,min=4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// IdentidadeResponse is the tagged identity returned on both login paths.
// Tipo: "perfil" | "funcionario"
type IdentidadeResponse struct {
	ID    string `json:"id"`
	Tipo  string `json:"tipo"`
	Nome  string `json:"nome"`
	Papel string `json:"papel"`
}

type LoginResponse struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	TokenType    string             `json:"token_type"`
	ExpiresIn    int                `json:"expires_in"` // seconds
	Identidade   IdentidadeResponse `json:"identidade"`
}

type FuncionarioResponse struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	CPF   string `json:"cpf"`
	Papel string `json:"papel"`
	Ativo bool   `json:"ativo"`
}
