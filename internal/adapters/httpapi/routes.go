package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/farmchain-go/internal/adapters/metrics"
	"github.com/andrescamacho/farmchain-go/internal/application/farm/commands"
	"github.com/andrescamacho/farmchain-go/internal/application/farm/queries"
	"github.com/andrescamacho/farmchain-go/internal/application/logging"
	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
)

const routeParamFarmID = "farmID"

// maxBodyBytes caps request bodies; a full action batch is a few KB.
const maxBodyBytes = 1 << 20

var validate = validator.New()

type handlerFunc func(ctx context.Context, routeParams map[string]string, body []byte) (interface{}, *HandlerError)

func (s *Server) makeHandler(handler handlerFunc) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithLogger(r.Context(), s.logger)

		var body []byte
		if r.Body != nil {
			var err error
			body, err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
			if err != nil {
				sendErr(ctx, w, NewInternalServerHandlerError(fmt.Sprintf("reading request body: %s", err)))
				return
			}
		}

		response, hErr := handler(ctx, mux.Vars(r), body)
		if hErr != nil {
			sendErr(ctx, w, hErr)
			return
		}
		sendJSONResponse(w, http.StatusOK, response)
	}
}

func sendErr(ctx context.Context, w http.ResponseWriter, hErr *HandlerError) {
	logging.FromContext(ctx).Log("WARN", "request failed", map[string]interface{}{
		"status": hErr.Code,
		"error":  hErr.Message,
	})
	sendJSONResponse(w, hErr.Code, hErr)
}

func sendJSONResponse(w http.ResponseWriter, status int, response interface{}) {
	b, err := json.Marshal(response)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func (s *Server) addRoutes() {
	s.router.HandleFunc("/health", s.makeHandler(healthHandler)).Methods("GET")

	s.router.HandleFunc("/save", s.makeHandler(s.saveHandler)).Methods("POST")

	s.router.HandleFunc("/withdraw", s.makeHandler(s.withdrawHandler)).Methods("POST")

	s.router.HandleFunc(
		fmt.Sprintf("/farms/{%s}", routeParamFarmID),
		s.makeHandler(s.getFarmHandler)).
		Methods("GET")

	if metrics.IsEnabled() {
		s.router.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})).Methods("GET")
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

func healthHandler(_ context.Context, _ map[string]string, _ []byte) (interface{}, *HandlerError) {
	return &healthResponse{Status: "ok"}, nil
}

// saveRequest is the wire form of a session save. Actions stays raw
// here; the action codec decodes the batch into typed actions.
type saveRequest struct {
	FarmID    uint64          `json:"farmId" validate:"required"`
	Sender    string          `json:"sender" validate:"required"`
	SessionID string          `json:"sessionId" validate:"required"`
	Signature string          `json:"signature" validate:"required"`
	Actions   json.RawMessage `json:"actions" validate:"required"`
}

type saveResponse struct {
	Farm      farm.Snapshot `json:"farm"`
	SessionID string        `json:"sessionId"`
}

func (s *Server) saveHandler(ctx context.Context, _ map[string]string, body []byte) (interface{}, *HandlerError) {
	var req saveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, NewHandlerError(http.StatusBadRequest, fmt.Sprintf("malformed request: %s", err))
	}
	if err := validate.Struct(&req); err != nil {
		return nil, NewHandlerError(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err))
	}

	batch, err := actions.DecodeBatch(req.Actions)
	if err != nil {
		return nil, NewHandlerError(http.StatusBadRequest, fmt.Sprintf("invalid actions: %s", err))
	}

	response, err := s.dispatcher.Send(ctx, &commands.SaveFarmCommand{
		FarmID:    req.FarmID,
		Sender:    req.Sender,
		SessionID: req.SessionID,
		Signature: req.Signature,
		Actions:   batch,
	})
	if err != nil {
		return nil, handlerErrorFrom(err)
	}

	saved, ok := response.(*commands.SaveFarmResponse)
	if !ok {
		return nil, NewInternalServerHandlerError(fmt.Sprintf("unexpected response type %T", response))
	}
	return &saveResponse{Farm: saved.Farm, SessionID: saved.SessionID}, nil
}

// withdrawRequest is the wire form of a withdrawal authorization
// request. IDs and Amounts may be empty; sfl is a decimal string.
type withdrawRequest struct {
	FarmID    uint64   `json:"farmId" validate:"required"`
	Sender    string   `json:"sender" validate:"required"`
	SessionID string   `json:"sessionId" validate:"required"`
	Signature string   `json:"signature" validate:"required"`
	SFL       string   `json:"sfl" validate:"required"`
	IDs       []int    `json:"ids"`
	Amounts   []string `json:"amounts"`
}

type withdrawResponse struct {
	Signature string `json:"signature"`
	Deadline  int64  `json:"deadline"`
}

func (s *Server) withdrawHandler(ctx context.Context, _ map[string]string, body []byte) (interface{}, *HandlerError) {
	var req withdrawRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, NewHandlerError(http.StatusBadRequest, fmt.Sprintf("malformed request: %s", err))
	}
	if err := validate.Struct(&req); err != nil {
		return nil, NewHandlerError(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err))
	}

	response, err := s.dispatcher.Send(ctx, &commands.WithdrawCommand{
		FarmID:    req.FarmID,
		Sender:    req.Sender,
		SessionID: req.SessionID,
		Signature: req.Signature,
		SFL:       req.SFL,
		IDs:       req.IDs,
		Amounts:   req.Amounts,
	})
	if err != nil {
		return nil, handlerErrorFrom(err)
	}

	signed, ok := response.(*commands.WithdrawResponse)
	if !ok {
		return nil, NewInternalServerHandlerError(fmt.Sprintf("unexpected response type %T", response))
	}
	return &withdrawResponse{Signature: signed.Signature, Deadline: signed.Deadline}, nil
}

type farmResponse struct {
	ID        uint64        `json:"id"`
	Owner     string        `json:"owner"`
	SessionID string        `json:"sessionId"`
	Farm      farm.Snapshot `json:"farm"`
}

func (s *Server) getFarmHandler(ctx context.Context, routeParams map[string]string, _ []byte) (interface{}, *HandlerError) {
	farmID, err := strconv.ParseUint(routeParams[routeParamFarmID], 10, 64)
	if err != nil {
		return nil, NewHandlerError(http.StatusBadRequest,
			fmt.Sprintf("Couldn't parse the '%s' route parameter: %s", routeParamFarmID, err))
	}

	response, err := s.dispatcher.Send(ctx, &queries.GetFarmQuery{FarmID: farmID})
	if err != nil {
		return nil, handlerErrorFrom(err)
	}

	loaded, ok := response.(*queries.GetFarmResponse)
	if !ok {
		return nil, NewInternalServerHandlerError(fmt.Sprintf("unexpected response type %T", response))
	}
	return &farmResponse{
		ID:        loaded.ID,
		Owner:     loaded.Owner,
		SessionID: loaded.Session,
		Farm:      loaded.Farm,
	}, nil
}
