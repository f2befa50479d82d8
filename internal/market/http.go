package market

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"GreenMarket/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Engine *Engine
	Log    *zap.Logger
}

func (s *Server) handleListCategory(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "category")
	cat, ok := ParseCategory(raw)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Unknown category: "+raw, nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]map[string]ItemInfo{
		cat.Plural(): s.Engine.Category(cat),
	})
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "category")
	cat, ok := ParseCategory(raw)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Unknown category: "+raw, nil)
		return
	}

	name := strings.ToLower(chi.URLParam(r, "name"))

	detail, err := s.Engine.Item(cat, name)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			kit.WriteError(w, r, http.StatusNotFound, nf.Error(), nil)
			return
		}
		if s.Log != nil {
			s.Log.Error("item lookup failed", zap.Error(err), zap.String("name", name))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, detail)
}

type shoppingCostReq struct {
	Items []ShoppingLine `json:"items"`
}

func (s *Server) handleShoppingCost(w http.ResponseWriter, r *http.Request) {
	req, err := decodeShoppingCost(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	kit.WriteJSON(w, http.StatusOK, s.Engine.ShoppingCost(req.Items))
}

func decodeShoppingCost(w http.ResponseWriter, r *http.Request) (shoppingCostReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req shoppingCostReq
	if err := dec.Decode(&req); err != nil {
		return shoppingCostReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return shoppingCostReq{}, errors.New("extra data after json object")
	}

	return req, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	min, err := decimal.NewFromString(q.Get("min_price"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "min_price must be a number", nil)
		return
	}
	max, err := decimal.NewFromString(q.Get("max_price"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "max_price must be a number", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, s.Engine.SearchByPriceRange(min, max, q.Get("category")))
}

func (s *Server) handleOrganic(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Engine.OrganicProducts())
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Engine.CompareRegularVsOrganic())
}
