package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

var updated = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func proofRecords() []*models.Deployment {
	return []*models.Deployment{
		{
			Name: "BrevisProof", ContractName: "BrevisProof", Network: "bsc", ChainID: 56,
			Address: "0x1111111111111111111111111111111111111111",
			Proxy: &models.ProxyInfo{
				Type:           "OptimizedTransparentProxy",
				Address:        "0x1111111111111111111111111111111111111111",
				Implementation: "0x2222222222222222222222222222222222222222",
			},
			Verification: models.VerificationInfo{Status: models.VerificationStatusVerified},
			UpdatedAt:    updated,
		},
		{
			Name: "BrevisProof_Implementation", ContractName: "BrevisProof", Network: "bsc", ChainID: 56,
			Address:   "0x2222222222222222222222222222222222222222",
			UpdatedAt: updated,
		},
		{
			Name: "Token", ContractName: "Token", Network: "localhost", ChainID: 31337,
			Address:      "0x3333333333333333333333333333333333333333",
			Verification: models.VerificationInfo{Status: models.VerificationStatusSkipped},
			UpdatedAt:    updated,
		},
	}
}

func TestRenderDeploymentList(t *testing.T) {
	var buf bytes.Buffer
	r := NewDeploymentsRenderer(&buf)

	require.NoError(t, r.RenderDeploymentList(&usecase.DeploymentListResult{}))
	assert.Equal(t, "No deployments found\n", buf.String())

	buf.Reset()
	err := r.RenderDeploymentList(&usecase.DeploymentListResult{
		Deployments: proofRecords(),
		Summary:     usecase.DeploymentSummary{Total: 3, Proxies: 1, Verified: 1},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "bsc (56)")
	assert.Contains(t, out, "localhost (31337)")
	assert.Contains(t, out, "PROXIES")
	assert.Contains(t, out, "AUXILIARY")
	assert.Contains(t, out, "└─ BrevisProof")
	assert.Contains(t, out, "✓ Verified")
	assert.Contains(t, out, "- Skipped")
	assert.Contains(t, out, "Total deployments: 3 (1 proxied, 1 verified)")
}

func TestRenderDeployment(t *testing.T) {
	records := proofRecords()
	records[0].Args = models.ConstructorArgs{"0x0000000000000000000000000000000000000000"}
	records[0].Proxy.History = []models.ProxyUpgrade{{Implementation: "0x4444444444444444444444444444444444444444", TransactionHash: "0xabc", UpgradedAt: updated}}

	var buf bytes.Buffer
	err := NewDeploymentRenderer(&buf).RenderDeployment(&usecase.ShowDeploymentResult{
		Deployment:     records[0],
		Implementation: records[1],
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Deployment: BrevisProof")
	assert.Contains(t, out, "[0] 0x0000000000000000000000000000000000000000")
	assert.Contains(t, out, "Implementation Record: BrevisProof_Implementation")
	assert.Contains(t, out, "1. 0x4444444444444444444444444444444444444444")
}

func TestRenderUpgradedProxyRecord(t *testing.T) {
	proxy := &models.Deployment{
		Name: "BrevisProof_Proxy", ContractName: "OptimizedTransparentProxy", Network: "bsc", ChainID: 56,
		Address:               "0x1111111111111111111111111111111111111111",
		Args:                  models.ConstructorArgs{"0x2222222222222222222222222222222222222222", "0x5555555555555555555555555555555555555555", "0x"},
		CurrentImplementation: "0x4444444444444444444444444444444444444444",
		NumDeployments:        1,
	}

	var buf bytes.Buffer
	require.NoError(t, NewDeploymentRenderer(&buf).RenderDeployment(&usecase.ShowDeploymentResult{Deployment: proxy}))

	out := buf.String()
	assert.Contains(t, out, "[0] 0x2222222222222222222222222222222222222222")
	assert.Contains(t, out, "Current Implementation: 0x4444444444444444444444444444444444444444")
}

func TestRenderNetworks(t *testing.T) {
	var buf bytes.Buffer
	err := NewNetworksRenderer(&buf).RenderNetworksList(&usecase.ListNetworksResult{
		Current: "bsc",
		Networks: []usecase.NetworkStatus{
			{Name: "bsc", ChainID: 56, Live: true, RPCURL: "https://bsc.example", Deployments: 3},
			{Name: "broken", Error: errors.New("no url")},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "https://bsc.example")
	assert.Contains(t, out, "error: no url")
}

func TestRenderVerify(t *testing.T) {
	records := proofRecords()

	var buf bytes.Buffer
	r := NewVerifyRenderer(&buf)
	require.NoError(t, r.RenderVerifyResult(&usecase.VerifyResult{Deployment: records[0], Skipped: true}))
	assert.Contains(t, buf.String(), "already verified")

	buf.Reset()
	err := r.RenderVerifyAllResult(&usecase.VerifyAllResult{
		Results: []*usecase.VerifyResult{
			{Deployment: records[0], Success: true},
			{Deployment: records[2], Errors: []string{"explorer down"}},
		},
		SuccessCount: 1,
	}, usecase.VerifyOptions{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✗ explorer down")
	assert.Contains(t, buf.String(), "Verification complete: 1/2 successful")
}

func TestRenderDeployResult(t *testing.T) {
	records := proofRecords()
	var buf bytes.Buffer
	err := NewDeployRenderer(&buf).Render(&usecase.RunDeploymentsResult{
		Network: &config.Network{Name: "bsc", ChainID: 56},
		Scripts: []*usecase.ScriptResult{{
			ScriptID:    "000_brevis_proof",
			Deployments: records[:2],
			Reused:      map[string]bool{"BrevisProof_Implementation": true},
			Duration:    1500 * time.Millisecond,
		}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "reused")
	assert.Contains(t, out, "1 scripts completed on bsc (chain 56) in 1.5s")
}

func TestExportRenderer(t *testing.T) {
	exports := []*usecase.NetworkExport{{
		Name:    "bsc",
		ChainID: 56,
		Contracts: map[string]usecase.ExportedContract{
			"BrevisProof": {Address: "0x11", Implementation: "0x22", ABI: json.RawMessage(`[]`)},
		},
	}}

	_, err := NewExportRenderer(&bytes.Buffer{}, "toml")
	assert.Error(t, err)

	var buf bytes.Buffer
	r, err := NewExportRenderer(&buf, FormatYAML)
	require.NoError(t, err)
	require.NoError(t, r.Render(exports))

	var fromYAML []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, "bsc", fromYAML[0]["name"])
	assert.NotContains(t, buf.String(), "abi")

	buf.Reset()
	r, err = NewExportRenderer(&buf, FormatJSON)
	require.NoError(t, err)
	require.NoError(t, r.Render(exports))
	assert.Contains(t, buf.String(), `"abi": []`)
}
