package sdk

import (
	"context"
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/okra-platform/sdkgen/internal/codegen"
	"github.com/okra-platform/sdkgen/internal/emit"
	"github.com/okra-platform/sdkgen/internal/registry"
	"github.com/okra-platform/sdkgen/internal/templates"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	reg        *registry.Registry
	sdkRoot    string
	clientRoot string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	reg, err := registry.LoadFile(filepath.Join("testdata", "registry.yaml"))
	require.NoError(t, err)

	dir := t.TempDir()
	return &testEnv{
		reg:        reg,
		sdkRoot:    filepath.Join(dir, "sdk"),
		clientRoot: filepath.Join(dir, "client"),
	}
}

func (e *testEnv) runner(t *testing.T, store templates.Store) *Runner {
	t.Helper()
	gen, err := codegen.DefaultRegistry.Get("go", e.reg)
	require.NoError(t, err)

	opts := Options{
		SDKRoot:    e.sdkRoot,
		ClientRoot: e.clientRoot,
		Emit:       emit.Options{CreateDirs: true},
	}
	return NewRunner(e.reg, gen, store, opts, zerolog.Nop())
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunner_GeneratesEveryRelevantRoute(t *testing.T) {
	env := newTestEnv(t)

	summary, err := env.runner(t, templates.EmbeddedStore{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Routes)
	assert.Equal(t, 6, summary.Known)
	assert.Equal(t, 10, summary.Visited)
	assert.Equal(t, 10, summary.Processed)

	for _, route := range []string{"blocks", "chunks", "init", "state", "config"} {
		for _, root := range []string{env.sdkRoot, env.clientRoot} {
			path := filepath.Join(root, route+".go")
			src := readFile(t, path)
			_, err := parser.ParseFile(token.NewFileSet(), path, src, parser.AllErrors)
			assert.NoError(t, err, "%s should be valid Go:\n%s", path, src)
		}
	}
	assert.NoFileExists(t, filepath.Join(env.sdkRoot, "daemon.go"))
	assert.NoFileExists(t, filepath.Join(env.clientRoot, "daemon.go"))
}

func TestRunner_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	r := env.runner(t, templates.EmbeddedStore{})

	first, err := r.Run(context.Background())
	require.NoError(t, err)
	second, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, first.Processed)
	assert.Equal(t, 0, second.Processed)
	assert.Equal(t, first.Visited, second.Visited)
}

func TestRunner_FileContents(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.runner(t, templates.EmbeddedStore{}).Run(context.Background())
	require.NoError(t, err)

	blocks := readFile(t, filepath.Join(env.clientRoot, "blocks.go"))
	assert.Contains(t, blocks, "type BlocksOptions struct {\n"+
		"\tBlockIds []string // allow for block ranges and steps\n"+
		"\tHashes   bool\n"+
		"\tEmitter  []string // allow for ENS names and addresses\n"+
		"\tTopic    []string // topics are strings\n"+
		"\tCacheTxs bool\n"+
		"\tFlow     BlocksFlow\n"+
		"\tGlobals\n\n}\n")
	assert.NotContains(t, blocks, "Decache")
	assert.Contains(t, blocks, "\tNoBF BlocksFlow = iota\n\tBFFrom\n\tBFTo\n")

	state := readFile(t, filepath.Join(env.clientRoot, "state.go"))
	assert.Contains(t, state, "\tProxyFor base.Address\n")
	assert.Contains(t, state, "\tSPSome\n")
	assert.Contains(t, state, "\t\t\"some\",\n")

	// Test: the reserved package name is suffixed
	initMin := readFile(t, filepath.Join(env.sdkRoot, "init.go"))
	assert.Contains(t, initMin, `initPkg "github.com/okra-platform/sdkgen/example/internal/init"`)
	assert.Contains(t, initMin, "return initPkg.RunInit(w, values)")

	initFull := readFile(t, filepath.Join(env.clientRoot, "init.go"))
	assert.Contains(t, initFull, "// no enums\n\n// EXISTING_CODE")
}

func TestRunner_CollidingEnumsAcrossRoutes(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.runner(t, templates.EmbeddedStore{}).Run(context.Background())
	require.NoError(t, err)

	chunks := readFile(t, filepath.Join(env.clientRoot, "chunks.go"))
	config := readFile(t, filepath.Join(env.clientRoot, "config.go"))

	assert.Contains(t, chunks, "NoCM1 ChunksMode = iota")
	assert.Contains(t, chunks, `"nocm1",`)
	assert.Contains(t, config, "NoCM2 ConfigMode = iota")
	assert.Contains(t, config, `"nocm2",`)
}

func TestRunner_MissingTemplate(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, templates.Minimal), []byte("package sdk\n"), 0644))

	summary, err := env.runner(t, templates.NewDirStore(dir)).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, templates.ErrNotFound))
	assert.Zero(t, summary.Visited)
	assert.NoDirExists(t, env.sdkRoot)
}

func TestRunner_UnwritablePath(t *testing.T) {
	env := newTestEnv(t)
	// a file where the sdk root folder should be
	require.NoError(t, os.WriteFile(env.sdkRoot, []byte("x"), 0644))

	summary, err := env.runner(t, templates.EmbeddedStore{}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "route blocks")
	assert.Contains(t, err.Error(), env.sdkRoot)
	assert.Equal(t, 1, summary.Visited)
	assert.Equal(t, 0, summary.Routes)
}

func TestRunner_Cancelled(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.runner(t, templates.EmbeddedStore{}).Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunner_CustomTemplates(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, templates.Minimal), []byte("package [{PKG}] // [{PROPER}] [{LOWER}]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, templates.Full), []byte("[{ENUMS}]"), 0644))

	_, err := env.runner(t, templates.NewDirStore(dir)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "package initPkg // Init init\n", readFile(t, filepath.Join(env.sdkRoot, "init.go")))
	assert.Equal(t, templates.NoEnums, readFile(t, filepath.Join(env.clientRoot, "init.go")))
}
