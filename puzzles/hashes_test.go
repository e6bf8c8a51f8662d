package puzzles

import (
	"os"
	"path/filepath"
	"testing"

	"xdao.co/spendclass/clvm"
)

func TestMainnetHashes_MatchModPrograms(t *testing.T) {
	root := filepath.Join("..", "testdata", "mainnet", "mods")
	cases := []struct {
		file string
		want clvm.Bytes32
	}{
		{"p2_delegated_puzzle_or_hidden_puzzle.hex", StandardPuzzleHash},
		{"cat_v2.hex", CATPuzzleHashV2},
		{"singleton_launcher.hex", SingletonLauncherPuzzleHash},
	}
	for _, tc := range cases {
		b, err := os.ReadFile(filepath.Join(root, tc.file))
		if err != nil {
			t.Fatalf("read %s: %v", tc.file, err)
		}
		a := clvm.NewAllocator()
		mod, err := clvm.ParseHex(a, string(b), clvm.ParseOptions{})
		if err != nil {
			t.Fatalf("parse %s: %v", tc.file, err)
		}
		if got := clvm.TreeHash(a, mod); got != tc.want {
			t.Fatalf("%s: tree hash %s, want %s", tc.file, got, tc.want)
		}
	}
}
