package chainexplorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	"github.com/nocknetwork/nockd/internal/core/ports"
	"github.com/nocknetwork/nockd/pkg/circuitbreaker"
	"github.com/nocknetwork/nockd/pkg/httputil"
)

const defaultRequestsPerSecond = 20

type noteResponse struct {
	TxID      string `json:"txid"`
	Index     uint32 `json:"index"`
	Value     uint64 `json:"value"`
	Address   string `json:"address"`
	Origin    string `json:"origin"`
	Confirmed bool   `json:"confirmed"`
}

type txStatusResponse struct {
	Confirmed bool `json:"confirmed"`
}

type broadcastResponse struct {
	TxID string `json:"txid"`
}

type explorerService struct {
	apiURL  string
	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

// NewService returns a ports.ChainService talking to a nock explorer over
// HTTP. Requests are rate limited and go through a circuit breaker so a
// flapping explorer fails fast instead of hanging every send.
func NewService(apiURL string) (ports.ChainService, error) {
	service := &explorerService{
		apiURL:  apiURL,
		cb:      circuitbreaker.NewCircuitBreaker("explorer"),
		limiter: ratelimit.New(defaultRequestsPerSecond),
	}

	if err := service.healthCheck(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return service, nil
}

func (e *explorerService) QueryNotes(
	ctx context.Context, addr string,
) ([]ports.ChainNote, error) {
	url := fmt.Sprintf("%s/address/%s/notes", e.apiURL, addr)
	resp, err := e.get(ctx, url)
	if err != nil {
		return nil, err
	}

	notes := make([]noteResponse, 0)
	if err := json.Unmarshal([]byte(resp), &notes); err != nil {
		return nil, fmt.Errorf("decoding notes of %s: %w", addr, err)
	}

	chainNotes := make([]ports.ChainNote, 0, len(notes))
	for _, n := range notes {
		chainNotes = append(chainNotes, ports.ChainNote{
			TxID:      n.TxID,
			Index:     n.Index,
			Value:     n.Value,
			Address:   n.Address,
			Origin:    n.Origin,
			Confirmed: n.Confirmed,
		})
	}
	return chainNotes, nil
}

func (e *explorerService) Broadcast(
	ctx context.Context, txHex string,
) (string, error) {
	url := fmt.Sprintf("%s/tx", e.apiURL)

	e.limiter.Take()
	iResp, err := e.cb.Execute(func() (interface{}, error) {
		status, resp, err := httputil.NewHTTPRequest("POST", url, txHex, nil)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("broadcast rejected: %s", resp)
		}
		return resp, nil
	})
	if err != nil {
		return "", err
	}

	var reply broadcastResponse
	if err := json.Unmarshal([]byte(iResp.(string)), &reply); err != nil {
		return "", fmt.Errorf("decoding broadcast reply: %w", err)
	}
	return reply.TxID, nil
}

func (e *explorerService) GetTxStatus(
	ctx context.Context, chainTxID string,
) (ports.ChainTxStatus, error) {
	url := fmt.Sprintf("%s/tx/%s/status", e.apiURL, chainTxID)

	e.limiter.Take()
	iResp, err := e.cb.Execute(func() (interface{}, error) {
		status, resp, err := httputil.NewHTTPRequest("GET", url, "", nil)
		if err != nil {
			return nil, err
		}
		if status == http.StatusNotFound {
			return nil, nil
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("fetching tx status: %s", resp)
		}
		return resp, nil
	})
	if err != nil {
		return ports.ChainTxStatus{}, err
	}
	if iResp == nil {
		return ports.ChainTxStatus{Known: false}, nil
	}

	var reply txStatusResponse
	if err := json.Unmarshal([]byte(iResp.(string)), &reply); err != nil {
		return ports.ChainTxStatus{}, fmt.Errorf("decoding tx status: %w", err)
	}
	return ports.ChainTxStatus{Known: true, Confirmed: reply.Confirmed}, nil
}

func (e *explorerService) healthCheck() error {
	url := fmt.Sprintf("%s/chain/tip", e.apiURL)
	status, resp, err := httputil.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("explorer unavailable: %s", resp)
	}
	return nil
}

func (e *explorerService) get(ctx context.Context, url string) (string, error) {
	e.limiter.Take()
	iResp, err := e.cb.Execute(func() (interface{}, error) {
		status, resp, err := httputil.NewHTTPRequest("GET", url, "", nil)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d: %s", status, resp)
		}
		return resp, nil
	})
	if err != nil {
		return "", err
	}
	return iResp.(string), nil
}
