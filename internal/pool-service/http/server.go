package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/radieske/prediction-pool-service/internal/pool-service/dto"
	"github.com/radieske/prediction-pool-service/internal/pool-service/service"
)

// Server expõe as cinco operações do pool como endpoints HTTP/JSON.
// O transporte é fino: decodifica, delega ao serviço e devolve o envelope
type Server struct {
	log  *zap.Logger
	reg  *service.Registration
	upd  *service.Update
	look *service.Lookup
}

// NewServer instancia o servidor HTTP do pool
func NewServer(log *zap.Logger, reg *service.Registration, upd *service.Update, look *service.Lookup) *Server {
	return &Server{log: log, reg: reg, upd: upd, look: look}
}

// Router retorna o mux HTTP com as rotas da API
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/register", s.register)        // POST
	mux.HandleFunc("/update", s.update)            // POST
	mux.HandleFunc("/lookup", s.lookup)            // POST
	mux.HandleFunc("/verify/name", s.verifyName)   // POST
	mux.HandleFunc("/verify/email", s.verifyEmail) // POST
	return mux
}

// register cria um novo palpite mediante convite válido
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.reg.Register(r.Context(), req))
}

// update altera spread e data de um palpite pelo passcode
func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.upd.Update(r.Context(), req))
}

// lookup consulta um palpite pelo passcode
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) {
	var req dto.LookupRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.look.Lookup(r.Context(), req))
}

// verifyName valida um candidato a nome isoladamente
func (s *Server) verifyName(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyNameRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.look.VerifyName(r.Context(), req))
}

// verifyEmail valida um candidato a e-mail isoladamente
func (s *Server) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.look.VerifyEmail(r.Context(), req))
}

// decode aplica a checagem de método e o schema antes do pipeline de campos;
// corpo malformado é rejeitado aqui com o envelope de "malformed request"
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, service.MalformedRequest())
		return false
	}
	return true
}

// writeJSON serializa e envia resposta JSON
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
