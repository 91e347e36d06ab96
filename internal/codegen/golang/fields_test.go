package golang

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/okra-platform/sdkgen/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFields_ListOfAddresses(t *testing.T) {
	opts := []registry.Option{
		{Route: "getBlocks", LongName: "blocks", DeclaredType: "list<addr>", TypeHint: "[]string"},
	}

	fields, enums, err := BuildFields("getBlocks", opts, nil)
	require.NoError(t, err)
	assert.Equal(t, "\tBlockIds []string // allow for ENS names and addresses\n\tGlobals\n\n", fields)
	assert.Empty(t, enums)
}

func TestBuildFields_Aligned(t *testing.T) {
	opts := []registry.Option{
		{Route: "export", LongName: "addrs", DeclaredType: "list<addr>", TypeHint: "[]string"},
		{Route: "export", LongName: "topics", DeclaredType: "list<topic>", TypeHint: "[]string"},
		{Route: "export", LongName: "first_block", DeclaredType: "<blknum>", TypeHint: "uint64"},
		{Route: "export", LongName: "articulate", DeclaredType: "<boolean>", TypeHint: "bool"},
		{Route: "export", LongName: "emitter", DeclaredType: "list<address>", TypeHint: "[]string"},
	}

	fields, _, err := BuildFields("export", opts, nil)
	require.NoError(t, err)

	expected := "" +
		"\tAddrs      []string // allow for ENS names and addresses\n" +
		"\tTopics     []string // topics are strings\n" +
		"\tFirstBlock base.Blknum\n" +
		"\tArticulate bool\n" +
		"\tEmitter    base.Address\n" +
		"\tGlobals\n\n"
	assert.Equal(t, expected, fields)
}

func TestBuildFields_Enums(t *testing.T) {
	opts := []registry.Option{
		{Route: "state", LongName: "parts", DeclaredType: "list<enum[balance|nonce]>", TypeHint: "string"},
		{Route: "state", LongName: "changes", DeclaredType: "<boolean>", TypeHint: "bool"},
		{Route: "state", LongName: "encoding", DeclaredType: "enum[json|csv|txt]", TypeHint: "string"},
	}

	fields, enums, err := BuildFields("state", opts, nil)
	require.NoError(t, err)

	assert.Equal(t, "\tParts    StateParts\n\tChanges  bool\n\tEncoding StateEncoding\n\tGlobals\n\n", fields)

	// encounter order, each enum followed by a blank line
	partsAt := strings.Index(enums, "type StateParts int")
	encodingAt := strings.Index(enums, "type StateEncoding int")
	require.GreaterOrEqual(t, partsAt, 0)
	require.Greater(t, encodingAt, partsAt)
	assert.Contains(t, enums, "}[v]\n}\n\ntype StateEncoding int")
	assert.True(t, strings.HasSuffix(enums, "}[v]\n}\n\n"))
	assert.Contains(t, enums, "\tNoSE StateEncoding = iota\n\tSEJson\n\tSECsv\n\tSETxt\n")
	assert.Contains(t, enums, "\tNoSP StateParts = iota\n\tSPBalance\n\tSPNonce\n")
}

func TestBuildFields_PlannedSuffix(t *testing.T) {
	reg := collisionRegistry()
	plan, err := NewPlan(reg)
	require.NoError(t, err)

	_, chunkEnums, err := BuildFields("chunks", reg.OptionsFor("chunks"), plan)
	require.NoError(t, err)
	_, configEnums, err := BuildFields("config", reg.OptionsFor("config"), plan)
	require.NoError(t, err)

	assert.Contains(t, chunkEnums, "NoCM1 ChunksMode = iota")
	assert.Contains(t, chunkEnums, `"nocm1",`)
	assert.Contains(t, configEnums, "NoCM2 ConfigMode = iota")
	assert.Contains(t, configEnums, `"nocm2",`)
}

func TestBuildFields_NoOptions(t *testing.T) {
	fields, enums, err := BuildFields("daemon", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "\tGlobals\n\n", fields)
	assert.Empty(t, enums)
}

func TestBuildFields_ParseError(t *testing.T) {
	opts := []registry.Option{{Route: "list", LongName: "bad", DeclaredType: "list<addr"}}
	_, _, err := BuildFields("list", opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list.bad")
}

func TestBuildFields_PropertyAlignment(t *testing.T) {
	// Test: every type token starts at 1 + the longest field name (after the tab)
	rng := rand.New(rand.NewSource(11))
	names := []string{"a", "blocks", "transactions", "first_block", "last_block", "cache", "max_records", "n", "relevant", "unripe", "some_very_long_option_name"}
	types := []string{"<boolean>", "<blknum>", "list<addr>", "list<topic>", "<address>", "enum[x|y]", "<uint64>"}

	for i := 0; i < 30; i++ {
		t.Run(fmt.Sprintf("random_route_%d", i), func(t *testing.T) {
			n := rng.Intn(len(names)) + 1
			var opts []registry.Option
			longest := 0
			for j := 0; j < n; j++ {
				name := names[rng.Intn(len(names))]
				opts = append(opts, registry.Option{Route: "route", LongName: name, DeclaredType: types[rng.Intn(len(types))], TypeHint: "string"})
				longest = max(longest, len(FieldName(name)))
			}

			fields, _, err := BuildFields("route", opts, nil)
			require.NoError(t, err)

			lines := strings.Split(strings.TrimSuffix(fields, "\tGlobals\n\n"), "\n")
			lines = lines[:len(lines)-1]
			require.Len(t, lines, n)
			for j, line := range lines {
				col := 1 + longest + 1
				require.Greater(t, len(line), col, line)
				name := FieldName(opts[j].LongName)
				assert.Equal(t, "\t"+name, strings.TrimRight(line[:col], " "))
				assert.NotEqual(t, byte(' '), line[col], "type must start at column %d: %q", col, line)
				assert.Equal(t, byte(' '), line[col-1])
			}
		})
	}
}
