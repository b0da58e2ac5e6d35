package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
)

const (
	// ChainIDFile sits next to the records of a network and holds its chain id
	ChainIDFile = ".chainId"

	recordExt = ".json"
)

// FileRepository stores deployment records as one JSON file per name under
// <deployments dir>/<network>/.
type FileRepository struct {
	rootDir string

	mu sync.RWMutex
	// network -> name -> record, filled the first time a network is touched
	cache map[string]map[string]*models.Deployment
}

// NewFileRepository creates a repository rooted at the configured deployments directory
func NewFileRepository(cfg *config.RuntimeConfig) (*FileRepository, error) {
	if cfg.DeploymentsDir == "" {
		return nil, fmt.Errorf("deployments directory not configured")
	}
	return NewFileRepositoryAt(cfg.DeploymentsDir), nil
}

// NewFileRepositoryAt creates a repository rooted at dir
func NewFileRepositoryAt(dir string) *FileRepository {
	return &FileRepository{
		rootDir: dir,
		cache:   make(map[string]map[string]*models.Deployment),
	}
}

// GetDeployment retrieves a deployment by network and name
func (r *FileRepository) GetDeployment(ctx context.Context, network, name string) (*models.Deployment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.network(network)
	if err != nil {
		return nil, err
	}

	dep, ok := records[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	return cloneDeployment(dep), nil
}

// SaveDeployment writes a record, replacing any previous record of the same name
func (r *FileRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	if err := validateName(deployment.Network); err != nil {
		return fmt.Errorf("invalid network: %w", err)
	}
	if err := validateName(deployment.Name); err != nil {
		return fmt.Errorf("invalid deployment name: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.network(deployment.Network)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(deployment, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode deployment %s: %w", deployment.Name, err)
	}

	if err := r.writeFile(deployment.Network, deployment.Name+recordExt, append(data, '\n')); err != nil {
		return fmt.Errorf("failed to save deployment %s: %w", deployment.Name, err)
	}

	records[deployment.Name] = cloneDeployment(deployment)
	return nil
}

// DeleteDeployment removes a record
func (r *FileRepository) DeleteDeployment(ctx context.Context, network, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.network(network)
	if err != nil {
		return err
	}
	if _, ok := records[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}

	if err := os.Remove(filepath.Join(r.rootDir, network, name+recordExt)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete deployment %s: %w", name, err)
	}
	delete(records, name)
	return nil
}

// ListDeployments retrieves deployments matching the filter, sorted by network and name
func (r *FileRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	networks := []string{filter.Network}
	if filter.Network == "" {
		var err error
		if networks, err = r.ListNetworks(ctx); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.Deployment
	for _, network := range networks {
		records, err := r.network(network)
		if err != nil {
			return nil, err
		}
		for _, dep := range records {
			if filter.Matches(dep) {
				result = append(result, cloneDeployment(dep))
			}
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Network != result[j].Network {
			return result[i].Network < result[j].Network
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// ListNetworks returns the networks that have a records directory
func (r *FileRepository) ListNetworks(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.rootDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read deployments directory: %w", err)
	}

	var networks []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			networks = append(networks, entry.Name())
		}
	}
	sort.Strings(networks)
	return networks, nil
}

// SetChainID records the chain id of a network, creating its directory
func (r *FileRepository) SetChainID(ctx context.Context, network string, chainID uint64) error {
	if err := validateName(network); err != nil {
		return fmt.Errorf("invalid network: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeFile(network, ChainIDFile, []byte(strconv.FormatUint(chainID, 10)))
}

// GetChainID reads the chain id recorded for a network
func (r *FileRepository) GetChainID(ctx context.Context, network string) (uint64, error) {
	data, err := os.ReadFile(filepath.Join(r.rootDir, network, ChainIDFile))
	if os.IsNotExist(err) {
		return 0, fmt.Errorf("%w: chain id for %s", domain.ErrNotFound, network)
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
}

// network returns the cached records of a network, loading them on first use.
// Callers must hold the write lock.
func (r *FileRepository) network(network string) (map[string]*models.Deployment, error) {
	if records, ok := r.cache[network]; ok {
		return records, nil
	}

	records := make(map[string]*models.Deployment)
	dir := filepath.Join(r.rootDir, network)
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordExt) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var dep models.Deployment
		if err := json.Unmarshal(data, &dep); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		// The file name is authoritative
		dep.Name = strings.TrimSuffix(entry.Name(), recordExt)
		dep.Network = network
		records[dep.Name] = &dep
	}

	r.cache[network] = records
	return records, nil
}

// writeFile writes to a temp file first, then renames into place
func (r *FileRepository) writeFile(network, filename string, data []byte) error {
	dir := filepath.Join(r.rootDir, network)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, filename)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func validateName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%q is not a valid file name", name)
	}
	return nil
}

func cloneDeployment(dep *models.Deployment) *models.Deployment {
	clone := *dep
	clone.Args = dep.Args.Clone()
	if dep.Proxy != nil {
		proxy := *dep.Proxy
		proxy.InitArgs = dep.Proxy.InitArgs.Clone()
		proxy.History = append([]models.ProxyUpgrade(nil), dep.Proxy.History...)
		clone.Proxy = &proxy
	}
	return &clone
}

var _ usecase.DeploymentStore = (*FileRepository)(nil)
