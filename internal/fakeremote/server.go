// Package fakeremote serves the Conso Maestro inventory and recall routes from memory.
// It backs the package tests and the CLI demo mode.
package fakeremote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/conso-maestro/conso-sync/internal/inventory/dto"
	"github.com/conso-maestro/conso-sync/internal/model"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Route names accepted by Calls and Hold.
const (
	RouteListInventory = "listInventory"
	RouteUpdateProduct = "updateProduct"
	RouteDeleteProduct = "deleteProduct"
	RouteCheckRecall   = "checkRecall"
)

type Server struct {
	mu         sync.Mutex
	products   map[string]dto.ProductPayload
	owners     map[string]string
	order      []string
	recalls    map[string][]model.RecallRecord
	recallBody map[string]string
	shouldFail map[string]bool
	reject     map[string]string
	holds      map[string]chan struct{}
	calls      map[string]int

	router *mux.Router
	srv    *httptest.Server
}

func New() *Server {
	s := &Server{
		products:   make(map[string]dto.ProductPayload),
		owners:     make(map[string]string),
		recalls:    make(map[string][]model.RecallRecord),
		recallBody: make(map[string]string),
		shouldFail: make(map[string]bool),
		reject:     make(map[string]string),
		holds:      make(map[string]chan struct{}),
		calls:      make(map[string]int),
	}
	r := mux.NewRouter()
	r.HandleFunc("/frigo/{userId}", s.listInventory).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", s.updateProduct).Methods(http.MethodPut)
	r.HandleFunc("/products/{id}", s.deleteProduct).Methods(http.MethodDelete)
	r.HandleFunc("/rappels/check-recall/{userId}", s.checkRecall).Methods(http.MethodGet)
	s.router = r
	return s
}

// Start serves the routes on a loopback listener and returns the base URL.
func (s *Server) Start() string {
	s.srv = httptest.NewServer(s.router)
	return s.srv.URL
}

func (s *Server) Close() {
	if s.srv != nil {
		s.srv.Close()
	}
}

// Seed stores items for userID. Items without an ID get a fresh uuid; the stored items
// are returned with their IDs.
func (s *Server) Seed(userID string, items ...model.InventoryItem) []model.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.InventoryItem, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if _, exists := s.products[item.ID]; !exists {
			s.order = append(s.order, item.ID)
		}
		s.products[item.ID] = dto.FromModel(item)
		s.owners[item.ID] = userID
		out = append(out, item)
	}
	return out
}

// SeedRaw stores a payload as-is, bypassing model validation.
func (s *Server) SeedRaw(userID string, p dto.ProductPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.products[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.products[p.ID] = p
	s.owners[p.ID] = userID
}

// Product returns the stored item, if any.
func (s *Server) Product(id string) (model.InventoryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return model.InventoryItem{}, false
	}
	item, err := p.ToModel()
	if err != nil {
		return model.InventoryItem{}, false
	}
	return item, true
}

func (s *Server) SetRecalls(userID string, records []model.RecallRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recalls[userID] = records
}

// SetRecallBody overrides the raw JSON body returned for userID's recall check.
func (s *Server) SetRecallBody(userID, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recallBody[userID] = body
}

// SetShouldFail makes route answer 500 until reset.
func (s *Server) SetShouldFail(route string, shouldFail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shouldFail[route] = shouldFail
}

// SetReject makes route answer 200 with result=false and message. An empty message
// clears the rejection.
func (s *Server) SetReject(route, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if message == "" {
		delete(s.reject, route)
		return
	}
	s.reject[route] = message
}

// Hold blocks responses on route after the store has been read or written, until the
// returned release func is called.
func (s *Server) Hold(route string) (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.holds[route] = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if s.holds[route] == gate {
				delete(s.holds, route)
			}
			s.mu.Unlock()
			close(gate)
		})
	}
}

func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// begin records the call and reports whether the route must fail or reject.
func (s *Server) begin(route string) (fail bool, reject string, gate chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[route]++
	return s.shouldFail[route], s.reject[route], s.holds[route]
}

func (s *Server) listInventory(w http.ResponseWriter, r *http.Request) {
	fail, reject, gate := s.begin(RouteListInventory)
	if fail {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if reject != "" {
		writeJSON(w, dto.InventoryResponse{Result: false, Message: reject})
		return
	}

	userID := mux.Vars(r)["userId"]
	s.mu.Lock()
	data := make([]dto.ProductPayload, 0)
	for _, id := range s.order {
		if p, ok := s.products[id]; ok && s.owners[id] == userID {
			data = append(data, p)
		}
	}
	s.mu.Unlock()

	wait(r, gate)
	writeJSON(w, dto.InventoryResponse{Result: true, Data: data})
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	fail, reject, gate := s.begin(RouteUpdateProduct)
	if fail {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if reject != "" {
		writeJSON(w, dto.MutationResponse{Result: false, Message: reject})
		return
	}

	var in dto.UpdateStoragePlaceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}
	if _, err := model.ParseStorageLocation(in.NewStoragePlace); err != nil {
		writeJSON(w, dto.MutationResponse{Result: false, Message: err.Error()})
		return
	}

	id := mux.Vars(r)["id"]
	s.mu.Lock()
	p, ok := s.products[id]
	if ok {
		p.StoragePlace = in.NewStoragePlace
		s.products[id] = p
	}
	s.mu.Unlock()

	wait(r, gate)
	if !ok {
		writeJSON(w, dto.MutationResponse{Result: false, Message: "Produit non trouvé"})
		return
	}
	writeJSON(w, dto.MutationResponse{Result: true, Message: "Produit mis à jour"})
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	fail, reject, gate := s.begin(RouteDeleteProduct)
	if fail {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if reject != "" {
		writeJSON(w, dto.MutationResponse{Result: false, Message: reject})
		return
	}

	id := mux.Vars(r)["id"]
	s.mu.Lock()
	_, ok := s.products[id]
	if ok {
		delete(s.products, id)
		delete(s.owners, id)
	}
	s.mu.Unlock()

	wait(r, gate)
	if !ok {
		writeJSON(w, dto.MutationResponse{Result: false, Message: "Produit non trouvé"})
		return
	}
	writeJSON(w, dto.MutationResponse{Result: true, Message: "Produit supprimé"})
}

func (s *Server) checkRecall(w http.ResponseWriter, r *http.Request) {
	fail, _, gate := s.begin(RouteCheckRecall)
	if fail {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	userID := mux.Vars(r)["userId"]
	s.mu.Lock()
	raw, hasRaw := s.recallBody[userID]
	records, hasRecords := s.recalls[userID]
	s.mu.Unlock()

	wait(r, gate)
	if hasRaw {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(raw))
		return
	}
	if !hasRecords {
		writeJSON(w, map[string]interface{}{})
		return
	}
	writeJSON(w, map[string]interface{}{"recalls": records})
}

func wait(r *http.Request, gate chan struct{}) {
	if gate == nil {
		return
	}
	select {
	case <-gate:
	case <-r.Context().Done():
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
