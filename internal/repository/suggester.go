package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
)

// SuggesterRepository talks to the external neural move suggester over HTTP
// JSON. The engine's own heuristics are the fallback when it is down, so
// every error here is soft.
type SuggesterRepository struct {
	cfg    *bootstrap.Config
	log    *zap.SugaredLogger
	url    string
	client *http.Client
}

func NewSuggesterRepository(cfg *bootstrap.Config, log *zap.SugaredLogger) *SuggesterRepository {
	return &SuggesterRepository{
		cfg:    cfg,
		log:    log,
		url:    cfg.SuggesterUrl,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type suggestMoveRequest struct {
	RequestID string   `json:"request_id"`
	BoardSize int      `json:"board_size"`
	Moves     []string `json:"moves"`
	Komi      float64  `json:"komi"`
	Visits    int      `json:"visits"`
}

type suggestMoveResponse struct {
	Move    string  `json:"move"`
	WinProb float64 `json:"winprob"`
}

// SuggestMove sends the move list as GTP vertices and returns the suggested
// vertex ("pass" included).
func (s *SuggesterRepository) SuggestMove(ctx context.Context, boardSize int, moves []string, komi float64) (string, error) {
	requestID := uuid.New().String()
	reqBody, err := json.Marshal(suggestMoveRequest{
		RequestID: requestID,
		BoardSize: boardSize,
		Moves:     moves,
		Komi:      komi,
		Visits:    s.cfg.SuggesterVisits,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result suggestMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Move == "" {
		return "", fmt.Errorf("suggester returned no move")
	}

	s.log.Debugw("suggester replied", "request_id", requestID, "move", result.Move, "winprob", result.WinProb)
	return result.Move, nil
}
