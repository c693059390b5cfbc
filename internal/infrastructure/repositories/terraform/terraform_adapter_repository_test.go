//go:build unit

package terraform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/terraform"
	doubles "github.com/rios0rios0/dependactor/test/infrastructure/repositorydoubles"
)

const mainTF = `module "vpc" {
  source  = "terraform-aws-modules/vpc/aws"
  version = "5.1.0"
}

module "network" {
  source = "git::https://example.com/network.git?ref=v1.0.0"
}

module "local" {
  source = "./modules/local"
}
`

const lockHCL = `provider "registry.terraform.io/hashicorp/aws" {
  version     = "5.31.0"
  constraints = "~> 5.0"
  hashes = [
    "h1:abc=",
  ]
}

provider "registry.terraform.io/hashicorp/random" {
  version = "3.6.0"
}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	return dir
}

func TestAdapterRepositoryUpdateManifest(t *testing.T) {
	t.Parallel()

	t.Run("should set the version of a registry module", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeFile(t, "main.tf", mainTF)
		adapter := terraform.New(&doubles.SpyRunner{}, dir)

		// when
		err := adapter.UpdateManifest(context.Background(), "main.tf", "vpc", "5.5.1")

		// then
		require.NoError(t, err)
		data, _ := os.ReadFile(filepath.Join(dir, "main.tf"))
		assert.Contains(t, string(data), `"5.5.1"`)
		assert.NotContains(t, string(data), `"5.1.0"`)
		assert.Contains(t, string(data), "ref=v1.0.0")
	})

	t.Run("should rewrite the ref of a git module", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeFile(t, "main.tf", mainTF)
		adapter := terraform.New(&doubles.SpyRunner{}, dir)

		// when
		err := adapter.UpdateManifest(context.Background(), "main.tf", "network", "v1.2.0")

		// then
		require.NoError(t, err)
		data, _ := os.ReadFile(filepath.Join(dir, "main.tf"))
		assert.Contains(t, string(data), `"git::https://example.com/network.git?ref=v1.2.0"`)
		assert.Contains(t, string(data), `"5.1.0"`)
	})

	t.Run("should fail for a module that is not pinned", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeFile(t, "main.tf", mainTF)
		adapter := terraform.New(&doubles.SpyRunner{}, dir)

		// when
		err := adapter.UpdateManifest(context.Background(), "main.tf", "local", "1.0.0")

		// then
		require.Error(t, err)
	})

	t.Run("should fail for an unknown module", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeFile(t, "main.tf", mainTF)
		adapter := terraform.New(&doubles.SpyRunner{}, dir)

		// when
		err := adapter.UpdateManifest(context.Background(), "main.tf", "missing", "1.0.0")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing")
	})
}

func TestAdapterRepositoryUpdateLockfile(t *testing.T) {
	t.Parallel()

	t.Run("should run terraform init with upgrade next to the lock file", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "infra"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "infra", ".terraform.lock.hcl"), []byte(lockHCL), 0o600))
		runner := &doubles.SpyRunner{}
		adapter := terraform.New(runner, dir)

		// when
		snapshot, err := adapter.UpdateLockfile(context.Background(), "infra/.terraform.lock.hcl")

		// then
		require.NoError(t, err)
		assert.Equal(t, []doubles.RunCall{{
			Dir:  filepath.Join(dir, "infra"),
			Name: "terraform",
			Args: []string{"init", "-upgrade", "-backend=false", "-input=false"},
		}}, runner.Runs)
		assert.Equal(t, lockHCL, string(snapshot.Content))
	})
}

func TestAdapterRepositoryCollectDependencies(t *testing.T) {
	t.Parallel()

	t.Run("should map provider addresses to their selected versions", func(t *testing.T) {
		t.Parallel()

		// given
		adapter := terraform.New(&doubles.SpyRunner{}, ".")
		snapshot := entities.LockfileSnapshot{Path: ".terraform.lock.hcl", Content: []byte(lockHCL)}

		// when
		dependencies, err := adapter.CollectDependencies(context.Background(), snapshot)

		// then
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"registry.terraform.io/hashicorp/aws":    "5.31.0",
			"registry.terraform.io/hashicorp/random": "3.6.0",
		}, dependencies)
	})

	t.Run("should fail on invalid HCL", func(t *testing.T) {
		t.Parallel()

		// given
		adapter := terraform.New(&doubles.SpyRunner{}, ".")
		snapshot := entities.LockfileSnapshot{Path: ".terraform.lock.hcl", Content: []byte(`provider "x" {`)}

		// when
		_, err := adapter.CollectDependencies(context.Background(), snapshot)

		// then
		require.Error(t, err)
	})
}
