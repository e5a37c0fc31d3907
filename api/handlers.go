package api

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"cosmossdk.io/math"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/gin-gonic/gin"

	"github.com/TokeNest/TokeNest-SmartContract/api/health"
	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// pairsQuery binds the pagination parameters of GET /v1/pairs.
type pairsQuery struct {
	Limit      uint64 `form:"limit"`
	Offset     uint64 `form:"offset"`
	Key        string `form:"key"`
	CountTotal bool   `form:"count_total"`
	Reverse    bool   `form:"reverse"`
}

// quoteQuery binds the parameters of GET /v1/quote.
type quoteQuery struct {
	TokenA  string `form:"token_a" binding:"required"`
	TokenB  string `form:"token_b" binding:"required"`
	AmountA string `form:"amount_a" binding:"required"`
}

// errorCodes maps dex and request failures to a response code and status.
var errorCodes = []struct {
	err    error
	code   string
	status int
}{
	{types.ErrPairNotFound, "PAIR_NOT_FOUND", http.StatusNotFound},
	{types.ErrInvalidPath, "INVALID_PATH", http.StatusBadRequest},
	{types.ErrInvalidAddressParameters, "INVALID_ADDRESS", http.StatusBadRequest},
	{types.ErrInsufficientAmount, "INSUFFICIENT_AMOUNT", http.StatusBadRequest},
	{types.ErrInsufficientLiquidity, "INSUFFICIENT_LIQUIDITY", http.StatusBadRequest},
	{types.ErrInsufficientInputAmount, "INSUFFICIENT_INPUT_AMOUNT", http.StatusBadRequest},
	{types.ErrInsufficientOutputAmount, "INSUFFICIENT_OUTPUT_AMOUNT", http.StatusBadRequest},
	{sdkerrors.ErrInvalidAddress, "INVALID_ADDRESS", http.StatusBadRequest},
	{sdkerrors.ErrInvalidRequest, "INVALID_REQUEST", http.StatusBadRequest},
}

func (s *Server) respondError(c *gin.Context, err error) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			c.JSON(e.status, ErrorResponse{Error: e.err.Error(), Code: e.code, Details: err.Error()})
			return
		}
	}
	s.logger.Error("query failed", "path", c.Request.URL.Path, "err", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal server error",
		Code:    "INTERNAL_ERROR",
		Details: err.Error(),
	})
}

func badRequest(c *gin.Context, msg string, err error) {
	resp := ErrorResponse{Error: msg, Code: "INVALID_REQUEST"}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// handleHealth runs the registered health checks
func (s *Server) handleHealth(c *gin.Context) {
	resp := s.health.PerformChecks(c.Request.Context())
	status := http.StatusOK
	if resp.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// handleLiveness is a simple liveness probe
func (s *Server) handleLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().Unix(),
	})
}

// handleGetFactory returns factory settings
func (s *Server) handleGetFactory(c *gin.Context) {
	resp, err := s.queries.Factory(s.chainCtx(), &types.QueryFactoryRequest{})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleGetPairs lists pairs in creation order
func (s *Server) handleGetPairs(c *gin.Context) {
	var q pairsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid pagination", err)
		return
	}
	page := &query.PageRequest{
		Limit:      q.Limit,
		Offset:     q.Offset,
		CountTotal: q.CountTotal,
		Reverse:    q.Reverse,
	}
	if q.Key != "" {
		key, err := base64.StdEncoding.DecodeString(q.Key)
		if err != nil {
			badRequest(c, "Invalid pagination key", err)
			return
		}
		page.Key = key
	}

	resp, err := s.queries.Pairs(s.chainCtx(), &types.QueryPairsRequest{Pagination: page})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleGetPair returns the pair of two tokens in either order
func (s *Server) handleGetPair(c *gin.Context) {
	resp, err := s.queries.Pair(s.chainCtx(), &types.QueryPairRequest{
		TokenA: c.Param("tokenA"),
		TokenB: c.Param("tokenB"),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleGetLPBalance returns an owner's LP position in a pair
func (s *Server) handleGetLPBalance(c *gin.Context) {
	resp, err := s.queries.LPBalance(s.chainCtx(), &types.QueryLPBalanceRequest{
		Pair:  c.Param("pair"),
		Owner: c.Param("owner"),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleGetQuote prices amount_a of token_a in token_b
func (s *Server) handleGetQuote(c *gin.Context) {
	var q quoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid quote request", err)
		return
	}
	amount, ok := math.NewIntFromString(q.AmountA)
	if !ok {
		badRequest(c, "Invalid amount_a", nil)
		return
	}

	resp, err := s.queries.Quote(s.chainCtx(), &types.QueryQuoteRequest{
		TokenA:  q.TokenA,
		TokenB:  q.TokenB,
		AmountA: amount,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleAmountsOut chains output amounts along a path
func (s *Server) handleAmountsOut(c *gin.Context) {
	s.handleAmounts(c, s.queries.AmountsOut)
}

// handleAmountsIn chains input amounts backwards along a path
func (s *Server) handleAmountsIn(c *gin.Context) {
	s.handleAmounts(c, s.queries.AmountsIn)
}

type amountsQuery func(ctx context.Context, req *types.QueryAmountsRequest) (*types.QueryAmountsResponse, error)

func (s *Server) handleAmounts(c *gin.Context, run amountsQuery) {
	var req types.QueryAmountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	if req.Amount.IsNil() {
		badRequest(c, "amount is required", nil)
		return
	}

	resp, err := run(s.chainCtx(), &req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
