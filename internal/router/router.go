package router

import (
	"time"

	"chefcomanda/internal/config"
	"chefcomanda/internal/handler"
	"chefcomanda/internal/infra"
	"chefcomanda/internal/middleware"
	"chefcomanda/internal/realtime"
	"chefcomanda/internal/repository"
	"chefcomanda/internal/service"
	"chefcomanda/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, hub *realtime.Hub, dispatcher *worker.Dispatcher, nfceCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	perfilRepo := repository.NewPerfilRepository(db)
	funcionarioRepo := repository.NewFuncionarioRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	insumoRepo := repository.NewInsumoRepository(db)
	mesaRepo := repository.NewMesaRepository(db)
	comandaRepo := repository.NewComandaRepository(db)
	turnoRepo := repository.NewTurnoRepository(db)
	vendaRepo := repository.NewVendaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(perfilRepo, funcionarioRepo, cfg)
	categoriaSvc := service.NewCategoriaService(categoriaRepo, produtoRepo, hub)
	produtoSvc := service.NewProdutoService(produtoRepo, categoriaRepo, rdb, hub)
	estoqueSvc := service.NewEstoqueService(insumoRepo, produtoRepo, hub)
	mesaSvc := service.NewMesaService(mesaRepo, comandaRepo, hub)
	comandaSvc := service.NewComandaService(comandaRepo, mesaRepo, produtoRepo, hub, dispatcher)
	turnoSvc := service.NewTurnoService(turnoRepo, vendaRepo, comandaRepo, perfilRepo, funcionarioRepo, hub, dispatcher, cfg.EmailResumoTurno)
	vendaSvc := service.NewVendaService(vendaRepo, comandaRepo, mesaRepo, turnoRepo, insumoRepo, hub, dispatcher)
	relatorioSvc := service.NewRelatorioService(vendaRepo, comandaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	funcionariosH := handler.NewFuncionariosHandler(authSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	estoqueH := handler.NewEstoqueHandler(estoqueSvc)
	mesasH := handler.NewMesasHandler(mesaSvc)
	comandasH := handler.NewComandasHandler(comandaSvc)
	cozinhaH := handler.NewCozinhaHandler(comandaSvc)
	turnosH := handler.NewTurnosHandler(turnoSvc)
	vendasH := handler.NewVendasHandler(vendaSvc)
	relatoriosH := handler.NewRelatoriosHandler(relatorioSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, nfceCB))

	// Auth (public, rate limited per IP)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/login-funcionario", middleware.LoginRateLimiter(), authH.LoginFuncionario)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	// Realtime change feed — token comes via query param on the upgrade request
	r.GET("/ws", jwtMW, hub.HandleWebSocket)

	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: admin, gerente, caixa, garcom, cozinha — declared per group

		mesas := v1.Group("/mesas")
		{
			mesas.GET("", middleware.RequireRole("admin", "gerente", "caixa", "garcom"), mesasH.Listar)
			mesas.GET("/:id", middleware.RequireRole("admin", "gerente", "caixa", "garcom"), mesasH.Buscar)
			mesas.PUT("/:id", middleware.RequireRole("admin", "gerente", "garcom"), mesasH.Atualizar)
			admin := mesas.Group("", middleware.RequireRole("admin", "gerente"))
			{
				admin.POST("", mesasH.Criar)
				admin.DELETE("/:id", mesasH.Desativar)
				admin.PATCH("/:id/reativar", mesasH.Reativar)
			}
		}

		comandas := v1.Group("/comandas")
		{
			lancamento := middleware.RequireRole("admin", "gerente", "caixa", "garcom")
			comandas.POST("/itens", lancamento, comandasH.AdicionarItem)
			comandas.POST("/:id/enviar", lancamento, comandasH.EnviarParaCozinha)
			comandas.POST("/:id/pronta-para-fechar", lancamento, comandasH.MarcarProntaParaFechar)
			comandas.GET("", middleware.RequireRole("admin", "gerente", "caixa", "garcom", "cozinha"), comandasH.Listar)
			comandas.GET("/:id", middleware.RequireRole("admin", "gerente", "caixa", "garcom", "cozinha"), comandasH.Buscar)
			// Cancellations need supervision
			comandas.DELETE("/itens/:item_id", middleware.RequireRole("admin", "gerente", "caixa"), comandasH.CancelarItem)
			comandas.DELETE("/:id", middleware.RequireRole("admin", "gerente"), comandasH.Cancelar)
		}

		cozinha := v1.Group("/cozinha", middleware.RequireRole("admin", "gerente", "cozinha"))
		{
			cozinha.GET("/board", cozinhaH.Board)
			cozinha.POST("/itens/:item_id/avancar", cozinhaH.AvancarItem)
		}

		// Catalog reads for the floor, writes restricted
		v1.GET("/cardapio", middleware.RequireRole("admin", "gerente", "caixa", "garcom", "cozinha"), produtosH.Cardapio)
		v1.GET("/produtos", middleware.RequireRole("admin", "gerente", "caixa", "garcom"), produtosH.Listar)
		v1.GET("/produtos/:id", middleware.RequireRole("admin", "gerente", "caixa", "garcom"), produtosH.Buscar)
		prods := v1.Group("/produtos", middleware.RequireRole("admin", "gerente"))
		{
			prods.POST("", produtosH.Criar)
			prods.PUT("/:id", produtosH.Atualizar)
			prods.DELETE("/:id", produtosH.Desativar)
			prods.PATCH("/:id/reativar", produtosH.Reativar)
		}

		v1.GET("/categorias", middleware.RequireRole("admin", "gerente", "caixa", "garcom", "cozinha"), categoriasH.Listar)
		categorias := v1.Group("/categorias", middleware.RequireRole("admin", "gerente"))
		{
			categorias.POST("", categoriasH.Criar)
			categorias.PUT("/:id", categoriasH.Atualizar)
			categorias.DELETE("/:id", categoriasH.Desativar)
		}

		estoque := v1.Group("/estoque", middleware.RequireRole("admin", "gerente"))
		{
			estoque.POST("/insumos", estoqueH.CriarInsumo)
			estoque.GET("/insumos", estoqueH.ListarInsumos)
			estoque.POST("/entradas", estoqueH.RegistrarEntrada)
			estoque.POST("/saidas", estoqueH.RegistrarSaida)
			estoque.GET("/alertas", estoqueH.Alertas)
			estoque.POST("/vinculos", estoqueH.VincularInsumo)
			estoque.DELETE("/vinculos/:id", estoqueH.RemoverVinculo)
		}

		turnos := v1.Group("/turnos")
		{
			operacao := middleware.RequireRole("admin", "gerente", "caixa")
			turnos.POST("/abrir", operacao, turnosH.Abrir)
			turnos.POST("/fechar", operacao, turnosH.Fechar)
			turnos.GET("/atual", operacao, turnosH.Atual)
			turnos.GET("/:id/resumo", middleware.RequireRole("admin", "gerente"), turnosH.Resumo)
			turnos.GET("", middleware.RequireRole("admin", "gerente"), turnosH.Historico)
		}

		vendas := v1.Group("/vendas")
		{
			vendas.POST("", middleware.RequireRole("admin", "gerente", "caixa"), vendasH.Finalizar)
			vendas.GET("", middleware.RequireRole("admin", "gerente", "caixa"), vendasH.Listar)
			vendas.GET("/:id", middleware.RequireRole("admin", "gerente", "caixa"), vendasH.Buscar)
		}

		funcionarios := v1.Group("/funcionarios", middleware.RequireRole("admin", "gerente"))
		{
			funcionarios.POST("", funcionariosH.Criar)
			funcionarios.GET("", funcionariosH.Listar)
			funcionarios.PUT("/:id", funcionariosH.Atualizar)
			funcionarios.DELETE("/:id", funcionariosH.Desativar)
			funcionarios.PATCH("/:id/reativar", funcionariosH.Reativar)
		}

		relatorios := v1.Group("/relatorios", middleware.RequireRole("admin", "gerente"))
		{
			relatorios.GET("/diario", relatoriosH.Diario)
			relatorios.GET("/produtos-mais-vendidos", relatoriosH.ProdutosMaisVendidos)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
