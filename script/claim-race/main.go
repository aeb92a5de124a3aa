package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/auth"
	"golang.org/x/sync/errgroup"
)

// createResponse is the part of the create delivery response the race needs
type createResponse struct {
	JobID uint64 `json:"jobId"`
}

// ClaimResult records one agent's attempt
type ClaimResult struct {
	AgentID      uint64
	StatusCode   int
	ResponseTime time.Duration
	Err          error
}

// RaceStats aggregates the outcome of all claim attempts
type RaceStats struct {
	Winners      []uint64
	Conflicts    int
	Failures     map[string]int
	ResponseTime []time.Duration
	Lock         sync.Mutex
}

func main() {
	agents := flag.Int("agents", 20, "Number of agents racing for the job")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	secret := flag.String("secret", "dev-only-secret-change-me", "JWT secret shared with the server")
	issuer := flag.String("issuer", "lending-core", "JWT issuer expected by the server")
	borrowRequestID := flag.Uint64("borrow-request", 1, "Borrow request to schedule the delivery for")
	borrowerID := flag.Uint64("borrower", 2, "Borrower of the borrow request")
	firstAgentID := flag.Uint64("first-agent", 1000, "User id of the first racing agent")
	flag.Parse()

	tokens, err := auth.NewTokenService(*secret, *issuer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "token service: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	ctx := context.Background()

	jobID, err := createJob(ctx, client, tokens, *baseURL, *borrowerID, *borrowRequestID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create delivery: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created delivery job %d, releasing %d agents\n", jobID, *agents)

	stats := &RaceStats{Failures: make(map[string]int)}
	start := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < *agents; i++ {
		agentID := *firstAgentID + uint64(i)
		g.Go(func() error {
			token, err := tokens.Mint(entity.Principal{UserID: agentID, Role: entity.RoleDeliveryAgent}, time.Now(), time.Hour)
			if err != nil {
				return err
			}
			<-start
			result := claim(gctx, client, *baseURL, token, jobID, agentID)
			stats.add(result)
			return nil
		})
	}
	close(start)

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "race aborted: %v\n", err)
		os.Exit(1)
	}

	printStats(stats)
	if len(stats.Winners) != 1 {
		os.Exit(2)
	}
}

func createJob(ctx context.Context, client *http.Client, tokens *auth.TokenService, baseURL string, borrowerID, borrowRequestID uint64) (uint64, error) {
	token, err := tokens.Mint(entity.Principal{UserID: borrowerID, Role: entity.RoleUser}, time.Now(), time.Hour)
	if err != nil {
		return 0, err
	}

	body, err := json.Marshal(map[string]any{
		"borrowRequestId": borrowRequestID,
		"pickupAddress":   "12 Owner Street",
		"deliveryAddress": "34 Borrower Avenue",
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/v1/deliveries", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, err
	}
	return created.JobID, nil
}

func claim(ctx context.Context, client *http.Client, baseURL, token string, jobID, agentID uint64) ClaimResult {
	url := fmt.Sprintf("%s/api/v1/deliveries/%d/assign", baseURL, jobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, nil)
	if err != nil {
		return ClaimResult{AgentID: agentID, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	started := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(started)
	if err != nil {
		return ClaimResult{AgentID: agentID, ResponseTime: elapsed, Err: err}
	}
	defer resp.Body.Close()

	return ClaimResult{AgentID: agentID, StatusCode: resp.StatusCode, ResponseTime: elapsed}
}

func (s *RaceStats) add(r ClaimResult) {
	s.Lock.Lock()
	defer s.Lock.Unlock()

	s.ResponseTime = append(s.ResponseTime, r.ResponseTime)
	switch {
	case r.Err != nil:
		s.Failures[r.Err.Error()]++
	case r.StatusCode == http.StatusOK:
		s.Winners = append(s.Winners, r.AgentID)
	case r.StatusCode == http.StatusConflict:
		s.Conflicts++
	default:
		s.Failures[fmt.Sprintf("HTTP %d", r.StatusCode)]++
	}
}

func printStats(s *RaceStats) {
	sort.Slice(s.ResponseTime, func(i, j int) bool { return s.ResponseTime[i] < s.ResponseTime[j] })

	fmt.Println("\n===== Claim Race Results =====")
	fmt.Printf("Winners: %d %v\n", len(s.Winners), s.Winners)
	fmt.Printf("Conflicts (409): %d\n", s.Conflicts)
	if n := len(s.ResponseTime); n > 0 {
		fmt.Printf("Fastest: %v\n", s.ResponseTime[0])
		fmt.Printf("Median: %v\n", s.ResponseTime[n/2])
		fmt.Printf("Slowest: %v\n", s.ResponseTime[n-1])
	}
	if len(s.Failures) > 0 {
		fmt.Println("Failures:")
		for msg, count := range s.Failures {
			fmt.Printf("  %s: %d\n", msg, count)
		}
	}
}
