package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/samber/lo"
)

const (
	buildInfoDir = "build-info"
	dbgSuffix    = ".dbg.json"
)

// artifactFile is the on-disk artifact. Hardhat writes the first five fields;
// hardhat-deploy's extended artifacts also embed the compiler input and metadata.
type artifactFile struct {
	models.Artifact
	SolcInput string `json:"solcInput,omitempty"`
	Metadata  string `json:"metadata,omitempty"`
}

type dbgFile struct {
	BuildInfo string `json:"buildInfo"`
}

type metadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
}

// Repository indexes the Hardhat artifacts found under the configured artifact paths
type Repository struct {
	projectRoot   string
	artifactPaths []string
	log           *slog.Logger

	mu            sync.RWMutex
	indexed       bool
	byFQN         map[string]*artifactFile   // "sourceName:ContractName"
	contractNames map[string][]*artifactFile // ContractName -> every artifact with that name
	buildInfos    map[string]*models.BuildInfo
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	paths := cfg.ArtifactPaths
	if len(paths) == 0 {
		paths = config.DefaultArtifactPaths()
	}
	return &Repository{
		projectRoot:   cfg.ProjectRoot,
		artifactPaths: paths,
		log:           log,
	}
}

// Index walks the artifact paths once. Missing paths are skipped.
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	r.byFQN = make(map[string]*artifactFile)
	r.contractNames = make(map[string][]*artifactFile)
	r.buildInfos = make(map[string]*models.BuildInfo)

	for _, p := range r.artifactPaths {
		root := p
		if !filepath.IsAbs(root) {
			root = filepath.Join(r.projectRoot, root)
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			r.log.Debug("artifact path not found", "path", root)
			continue
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == buildInfoDir {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".json" || strings.HasSuffix(path, dbgSuffix) {
				return nil
			}
			return r.processArtifact(path)
		})
		if err != nil {
			return fmt.Errorf("failed to index artifacts in %s: %w", root, err)
		}
	}

	r.indexed = true
	return nil
}

// Reset drops the index so the next lookup re-reads the artifacts
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexed = false
}

func (r *Repository) processArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var artifact artifactFile
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Not every JSON file under the artifact paths is an artifact
		r.log.Debug("skipping unparsable artifact", "path", path, "error", err)
		return nil
	}
	if artifact.ContractName == "" || len(artifact.ABI) == 0 {
		return nil
	}
	artifact.Path = path

	fqn := artifact.FullyQualifiedName()
	if _, exists := r.byFQN[fqn]; exists {
		// The first artifact path wins
		return nil
	}
	r.byFQN[fqn] = &artifact
	r.contractNames[artifact.ContractName] = append(r.contractNames[artifact.ContractName], &artifact)
	return nil
}

// GetArtifact finds an artifact by contract name or fully qualified name
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.byFQN[name]; ok {
		return r.copyOf(a), nil
	}

	matches := r.contractNames[name]
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", domain.ErrContractNotFound, name)
	case 1:
		return r.copyOf(matches[0]), nil
	}

	fqns := lo.Map(matches, func(a *artifactFile, _ int) string { return a.FullyQualifiedName() })
	sort.Strings(fqns)
	return nil, fmt.Errorf("multiple artifacts named %s, use a fully qualified name: %s", name, strings.Join(fqns, ", "))
}

// ContractNames returns the names of all indexed artifacts
func (r *Repository) ContractNames(ctx context.Context) ([]string, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.contractNames)
	sort.Strings(names)
	return names, nil
}

// GetBuildInfo returns the compiler input the artifact was built from
func (r *Repository) GetBuildInfo(ctx context.Context, artifact *models.Artifact) (*models.BuildInfo, error) {
	if artifact.BuildInfo != nil {
		return artifact.BuildInfo, nil
	}
	if err := r.Index(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.byFQN[artifact.FullyQualifiedName()]; ok && a.SolcInput != "" {
		return embeddedBuildInfo(a)
	}

	dbgPath := strings.TrimSuffix(artifact.Path, ".json") + dbgSuffix
	data, err := os.ReadFile(dbgPath)
	if err != nil {
		return nil, fmt.Errorf("%w: build info for %s", domain.ErrNotFound, artifact.ContractName)
	}

	var dbg dbgFile
	if err := json.Unmarshal(data, &dbg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", dbgPath, err)
	}
	buildInfoPath := filepath.Clean(filepath.Join(filepath.Dir(dbgPath), dbg.BuildInfo))

	if bi, ok := r.buildInfos[buildInfoPath]; ok {
		return bi, nil
	}

	data, err = os.ReadFile(buildInfoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read build info: %w", err)
	}
	var bi models.BuildInfo
	if err := json.Unmarshal(data, &bi); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", buildInfoPath, err)
	}
	if bi.ID == "" {
		bi.ID = strings.TrimSuffix(filepath.Base(buildInfoPath), ".json")
	}

	r.buildInfos[buildInfoPath] = &bi
	return &bi, nil
}

func embeddedBuildInfo(a *artifactFile) (*models.BuildInfo, error) {
	bi := &models.BuildInfo{Input: json.RawMessage(a.SolcInput)}
	if a.Metadata != "" {
		var md metadata
		if err := json.Unmarshal([]byte(a.Metadata), &md); err != nil {
			return nil, fmt.Errorf("failed to parse metadata of %s: %w", a.ContractName, err)
		}
		bi.SolcLongVersion = md.Compiler.Version
		bi.SolcVersion, _, _ = strings.Cut(md.Compiler.Version, "+")
	}
	return bi, nil
}

func (r *Repository) copyOf(a *artifactFile) *models.Artifact {
	out := a.Artifact
	return &out
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
