package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIURL is the Etherscan multichain (v2) endpoint
const DefaultAPIURL = "https://api.etherscan.io/v2/api"

// Target identifies one Etherscan-compatible API and chain
type Target struct {
	APIURL  string
	APIKey  string
	ChainID uint64
}

// SubmitParams contains the verifysourcecode parameters
type SubmitParams struct {
	Address         string
	ContractName    string // fully qualified, "path:Name"
	CompilerVersion string // "v0.8.20+commit.a1b79de6"
	StandardJSON    string // solc standard JSON input
	ConstructorArgs string // hex without 0x prefix
}

// StatusResult is the outcome of checkverifystatus
type StatusResult struct {
	Pending  bool
	Verified bool
	Message  string
}

// Service talks to Etherscan-compatible verification APIs
type Service struct {
	client *http.Client
}

// NewService creates a new verification service
func NewService() *Service {
	return &Service{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsVerified reports whether the explorer already has source code for address
func (s *Service) IsVerified(ctx context.Context, target Target, address string) (bool, error) {
	params := url.Values{}
	params.Set("module", "contract")
	params.Set("action", "getsourcecode")
	params.Set("address", address)

	result, err := s.get(ctx, target, params)
	if err != nil {
		return false, err
	}
	if result.Status != "1" {
		return false, nil
	}

	var sources []struct {
		SourceCode string `json:"SourceCode"`
	}
	if err := json.Unmarshal(result.Result, &sources); err != nil {
		return false, nil
	}
	return len(sources) > 0 && sources[0].SourceCode != "", nil
}

// Submit sends a standard-JSON verification request and returns its GUID.
// An "already verified" answer returns an empty GUID and no error.
func (s *Service) Submit(ctx context.Context, target Target, p SubmitParams) (string, error) {
	data := url.Values{}
	data.Set("apikey", target.APIKey)
	data.Set("module", "contract")
	data.Set("action", "verifysourcecode")
	data.Set("contractaddress", p.Address)
	data.Set("sourceCode", p.StandardJSON)
	data.Set("codeformat", "solidity-standard-json-input")
	data.Set("contractname", p.ContractName)
	data.Set("compilerversion", p.CompilerVersion)
	data.Set("constructorArguements", p.ConstructorArgs) // Note: Etherscan typo

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(target, nil), strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	result, err := s.do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit verification: %w", err)
	}

	message := result.text()
	if result.Status != "1" {
		if isAlreadyVerified(message) {
			return "", nil
		}
		return "", fmt.Errorf("explorer rejected verification: %s", message)
	}
	return message, nil
}

// CheckVerificationStatus checks the status of a pending verification
func (s *Service) CheckVerificationStatus(ctx context.Context, target Target, guid string) (*StatusResult, error) {
	params := url.Values{}
	params.Set("module", "contract")
	params.Set("action", "checkverifystatus")
	params.Set("guid", guid)

	result, err := s.get(ctx, target, params)
	if err != nil {
		return nil, fmt.Errorf("failed to check status: %w", err)
	}

	message := result.text()
	switch {
	case strings.Contains(strings.ToLower(message), "pending"):
		return &StatusResult{Pending: true, Message: message}, nil
	case result.Status == "1" || isAlreadyVerified(message):
		return &StatusResult{Verified: true, Message: message}, nil
	default:
		return &StatusResult{Message: message}, nil
	}
}

func (s *Service) get(ctx context.Context, target Target, params url.Values) (*etherscanResponse, error) {
	params.Set("apikey", target.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint(target, params), nil)
	if err != nil {
		return nil, err
	}
	return s.do(req)
}

func (s *Service) do(req *http.Request) (*etherscanResponse, error) {
	resp, err := s.client.Do(req) //nolint:gosec // URL is constructed from configured explorer endpoint
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("explorer returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var result etherscanResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

// endpoint returns the API URL with the chainid query parameter the v2 API requires
func endpoint(target Target, params url.Values) string {
	base := target.APIURL
	if base == "" {
		base = DefaultAPIURL
	}
	if params == nil {
		params = url.Values{}
	}
	if target.ChainID != 0 {
		params.Set("chainid", strconv.FormatUint(target.ChainID, 10))
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + params.Encode()
}

func isAlreadyVerified(message string) bool {
	return strings.Contains(strings.ToLower(message), "already verified")
}

// etherscanResponse represents Etherscan API response. Result is a string for
// most actions and an array for getsourcecode.
type etherscanResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func (r *etherscanResponse) text() string {
	var s string
	if err := json.Unmarshal(r.Result, &s); err == nil {
		return s
	}
	return string(r.Result)
}
