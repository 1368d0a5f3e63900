package realtime

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Evento notifica os clientes de que uma colecao mudou. O payload carrega
// apenas o identificador do registro; os clientes refazem a consulta REST.
type Evento struct {
	Colecao   string    `json:"colecao"`
	Tipo      string    `json:"tipo"` // insert, update, delete
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventoInsert = "insert"
	EventoUpdate = "update"
	EventoDelete = "delete"
)

// Publisher e a interface que os services usam para emitir eventos.
type Publisher interface {
	Publicar(colecao, tipo string, id uuid.UUID)
}

type subscription struct {
	conn     *websocket.Conn
	colecoes map[string]bool // vazio = todas
}

// Hub mantem as conexoes WebSocket e distribui eventos de mudanca.
type Hub struct {
	clients    map[*websocket.Conn]*subscription
	broadcast  chan Evento
	register   chan *subscription
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]*subscription),
		broadcast:  make(chan Evento, 256),
		register:   make(chan *subscription),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.clients[sub.conn] = sub
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn, sub := range h.clients {
				if len(sub.colecoes) > 0 && !sub.colecoes[ev.Colecao] {
					continue
				}
				if err := conn.WriteJSON(ev); err != nil {
					log.Warn().Err(err).Msg("ws write error")
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publicar nunca bloqueia o chamador. Se o buffer do hub estiver cheio o
// evento e descartado; os clientes se recuperam no proximo refetch.
func (h *Hub) Publicar(colecao, tipo string, id uuid.UUID) {
	ev := Evento{Colecao: colecao, Tipo: tipo, ID: id, Timestamp: time.Now()}
	select {
	case h.broadcast <- ev:
	default:
		log.Warn().Str("colecao", colecao).Msg("hub cheio, evento descartado")
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleWebSocket atende GET /ws?colecoes=comandas,mesas. Sem o parametro o
// cliente recebe eventos de todas as colecoes.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	colecoes := make(map[string]bool)
	if raw := c.Query("colecoes"); raw != "" {
		for _, nome := range strings.Split(raw, ",") {
			if nome = strings.TrimSpace(nome); nome != "" {
				colecoes[nome] = true
			}
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade error")
		return
	}

	sub := &subscription{conn: conn, colecoes: colecoes}
	h.register <- sub

	go h.readLoop(conn)
}

// readLoop descarta mensagens do cliente; o canal e somente servidor->cliente.
// A leitura continua existe para detectar o fechamento da conexao.
func (h *Hub) readLoop(conn *websocket.Conn) {
	defer func() { h.unregister <- conn }()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// NoopPublisher serve para testes unitarios dos services.
type NoopPublisher struct{}

func (NoopPublisher) Publicar(string, string, uuid.UUID) {}
