package terraform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	logger "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/domain/repositories"
	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/fingerprint"
	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/shell"
)

const (
	adapterName     = "terraform"
	lockfileName    = ".terraform.lock.hcl"
	manifestExt     = ".tf"
	terraformBinary = "terraform"
	moduleBlock     = "module"
	providerBlock   = "provider"
	versionAttr     = "version"
	sourceAttr      = "source"
)

// refPattern matches the ?ref= query of a Git module source.
var refPattern = regexp.MustCompile(`([?&]ref=)[^&]+`)

// AdapterRepository updates Terraform modules in .tf files and provider
// selections in .terraform.lock.hcl.
type AdapterRepository struct {
	runner  shell.Runner
	repoDir string
}

var _ repositories.AdapterRepository = (*AdapterRepository)(nil)

// New creates a Terraform adapter rooted at repoDir.
func New(runner shell.Runner, repoDir string) *AdapterRepository {
	return &AdapterRepository{runner: runner, repoDir: repoDir}
}

// NewAdapterRepository is the registry factory for the Terraform adapter.
func NewAdapterRepository(settings *entities.Settings) repositories.AdapterRepository {
	return New(shell.NewExecRunner(), settings.Repository)
}

func (it *AdapterRepository) Name() string { return adapterName }

func (it *AdapterRepository) Supports(path string) bool {
	return filepath.Base(path) == lockfileName || filepath.Ext(path) == manifestExt
}

// UpdateLockfile lets terraform select the newest allowed providers.
func (it *AdapterRepository) UpdateLockfile(
	ctx context.Context,
	path string,
) (entities.LockfileSnapshot, error) {
	if filepath.Base(path) != lockfileName {
		return entities.LockfileSnapshot{}, fmt.Errorf("%w: %s is not a %s", entities.ErrUnsupportedFile, path, lockfileName)
	}

	workDir := filepath.Join(it.repoDir, filepath.Dir(path))
	logger.Infof("[%s] Upgrading providers in %s", adapterName, workDir)

	if _, err := it.runner.Run(ctx, workDir, terraformBinary, "init", "-upgrade", "-backend=false", "-input=false"); err != nil {
		return entities.LockfileSnapshot{}, err
	}

	content, err := os.ReadFile(filepath.Join(it.repoDir, path))
	if err != nil {
		return entities.LockfileSnapshot{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return entities.LockfileSnapshot{Path: path, Content: content}, nil
}

// UpdateManifest points the module block named dependency at version. Registry
// modules get their version attribute set; Git modules get the ?ref= of
// their source rewritten.
func (it *AdapterRepository) UpdateManifest(_ context.Context, path, dependency, version string) error {
	if filepath.Ext(path) != manifestExt {
		return fmt.Errorf("%w: %s is not a Terraform file", entities.ErrUnsupportedFile, path)
	}

	absPath := filepath.Join(it.repoDir, path)
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	file, diags := hclwrite.ParseConfig(data, path, hcl.InitialPos)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse %s: %s", path, diags.Error())
	}

	block := findModule(file.Body(), dependency)
	if block == nil {
		return fmt.Errorf("module %q not found in %s", dependency, path)
	}

	if err = setModuleVersion(block.Body(), version); err != nil {
		return fmt.Errorf("module %q in %s: %w", dependency, path, err)
	}

	logger.Infof("[%s] Set module %s to %s in %s", adapterName, dependency, version, path)
	return os.WriteFile(absPath, file.Bytes(), info.Mode().Perm())
}

// CollectDependencies maps each provider address in a lock file to its selected version.
func (it *AdapterRepository) CollectDependencies(
	_ context.Context,
	snapshot entities.LockfileSnapshot,
) (map[string]any, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(snapshot.Content, snapshot.Path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", snapshot.Path, diags.Error())
	}

	bodyContent, _, partialDiags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: providerBlock, LabelNames: []string{"address"}},
		},
	})
	if partialDiags.HasErrors() {
		return nil, fmt.Errorf("failed to read %s: %s", snapshot.Path, partialDiags.Error())
	}

	dependencies := make(map[string]any)
	for _, block := range bodyContent.Blocks {
		attrs, _ := block.Body.JustAttributes()
		attr, ok := attrs[versionAttr]
		if !ok {
			continue
		}

		value, valueDiags := attr.Expr.Value(&hcl.EvalContext{})
		if valueDiags.HasErrors() || value.Type() != cty.String {
			continue
		}
		dependencies[block.Labels[0]] = value.AsString()
	}

	return dependencies, nil
}

func (it *AdapterRepository) Fingerprint(_ context.Context, path string) (string, error) {
	return fingerprint.File(filepath.Join(it.repoDir, path))
}

func findModule(body *hclwrite.Body, name string) *hclwrite.Block {
	for _, block := range body.Blocks() {
		labels := block.Labels()
		if block.Type() == moduleBlock && len(labels) > 0 && labels[0] == name {
			return block
		}
	}
	return nil
}

func setModuleVersion(body *hclwrite.Body, version string) error {
	if body.GetAttribute(versionAttr) != nil {
		body.SetAttributeValue(versionAttr, cty.StringVal(version))
		return nil
	}

	attr := body.GetAttribute(sourceAttr)
	if attr == nil {
		return fmt.Errorf("has neither %s nor %s", versionAttr, sourceAttr)
	}

	source := strings.Trim(strings.TrimSpace(string(attr.Expr().BuildTokens(nil).Bytes())), `"`)
	if !refPattern.MatchString(source) {
		return fmt.Errorf("source %q is not pinned to a ref", source)
	}

	body.SetAttributeValue(sourceAttr, cty.StringVal(refPattern.ReplaceAllString(source, "${1}"+version)))
	return nil
}
