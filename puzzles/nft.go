package puzzles

import (
	"fmt"

	"xdao.co/spendclass/clvm"
)

// NFTStateLayerArgs are the arguments curried into the NFT state layer.
type NFTStateLayerArgs[I any] struct {
	ModHash                   clvm.Bytes32
	Metadata                  NFTMetadata
	MetadataUpdaterPuzzleHash clvm.Bytes32
	InnerPuzzle               I
}

// NFTStatePuzzleOf returns a decoder for an NFT state layer whose inner puzzle decodes
// with inner.
func NFTStatePuzzleOf[I any](inner Decoder[I]) Decoder[Curried[NFTStateLayerArgs[I]]] {
	return func(a *clvm.Allocator, n clvm.NodePtr) (Curried[NFTStateLayerArgs[I]], error) {
		return decodeCurried(a, n, 4, func(f *fields) NFTStateLayerArgs[I] {
			return NFTStateLayerArgs[I]{
				ModHash:                   get(f, 0, "mod_hash", clvm.DecodeBytes32),
				Metadata:                  get(f, 1, "metadata", DecodeNFTMetadata),
				MetadataUpdaterPuzzleHash: get(f, 2, "metadata_updater_puzzle_hash", clvm.DecodeBytes32),
				InnerPuzzle:               get(f, 3, "inner_puzzle", inner),
			}
		})
	}
}

// CurryNFTStateLayer binds args into mod.
func CurryNFTStateLayer(a *clvm.Allocator, mod clvm.NodePtr, args NFTStateLayerArgs[clvm.NodePtr]) clvm.NodePtr {
	return clvm.Curry(a, mod,
		a.NewAtom(args.ModHash[:]),
		args.Metadata.Encode(a),
		a.NewAtom(args.MetadataUpdaterPuzzleHash[:]),
		args.InnerPuzzle,
	)
}

// RoyaltyTransferArgs are the arguments curried into the royalty transfer program
// carried by the ownership layer.
type RoyaltyTransferArgs struct {
	SingletonStruct      SingletonStruct
	RoyaltyPuzzleHash    clvm.Bytes32
	TradePricePercentage uint16
}

// TransferProgram is the curried royalty transfer program.
type TransferProgram = Curried[RoyaltyTransferArgs]

func DecodeTransferProgram(a *clvm.Allocator, n clvm.NodePtr) (TransferProgram, error) {
	return decodeCurried(a, n, 3, func(f *fields) RoyaltyTransferArgs {
		return RoyaltyTransferArgs{
			SingletonStruct:      get(f, 0, "singleton_struct", DecodeSingletonStruct),
			RoyaltyPuzzleHash:    get(f, 1, "royalty_puzzle_hash", clvm.DecodeBytes32),
			TradePricePercentage: get(f, 2, "trade_price_percentage", clvm.DecodeUint16),
		}
	})
}

// CurryRoyaltyTransfer binds args into mod.
func CurryRoyaltyTransfer(a *clvm.Allocator, mod clvm.NodePtr, args RoyaltyTransferArgs) clvm.NodePtr {
	return clvm.Curry(a, mod,
		args.SingletonStruct.Encode(a),
		a.NewAtom(args.RoyaltyPuzzleHash[:]),
		a.NewUint(uint64(args.TradePricePercentage)),
	)
}

// NFTOwnershipLayerArgs are the arguments curried into the NFT ownership layer.
type NFTOwnershipLayerArgs[I any] struct {
	ModHash         clvm.Bytes32
	CurrentOwner    *clvm.Bytes32
	TransferProgram TransferProgram
	InnerPuzzle     I
}

// NFTOwnershipPuzzleOf returns a decoder for an NFT ownership layer whose inner puzzle
// decodes with inner.
func NFTOwnershipPuzzleOf[I any](inner Decoder[I]) Decoder[Curried[NFTOwnershipLayerArgs[I]]] {
	return func(a *clvm.Allocator, n clvm.NodePtr) (Curried[NFTOwnershipLayerArgs[I]], error) {
		return decodeCurried(a, n, 4, func(f *fields) NFTOwnershipLayerArgs[I] {
			return NFTOwnershipLayerArgs[I]{
				ModHash:         get(f, 0, "mod_hash", clvm.DecodeBytes32),
				CurrentOwner:    get(f, 1, "current_owner", optionOf(clvm.DecodeBytes32)),
				TransferProgram: get(f, 2, "transfer_program", DecodeTransferProgram),
				InnerPuzzle:     get(f, 3, "inner_puzzle", inner),
			}
		})
	}
}

// CurryNFTOwnershipLayer binds args into mod. A decoded transfer program is reused
// as is; otherwise it is re-curried from its typed arguments.
func CurryNFTOwnershipLayer(a *clvm.Allocator, mod clvm.NodePtr, args NFTOwnershipLayerArgs[clvm.NodePtr]) clvm.NodePtr {
	transfer := args.TransferProgram.Node
	if transfer == a.Nil() {
		transfer = CurryRoyaltyTransfer(a, args.TransferProgram.Program, args.TransferProgram.Args)
	}
	return clvm.Curry(a, mod,
		a.NewAtom(args.ModHash[:]),
		encodeOptionBytes32(a, args.CurrentOwner),
		transfer,
		args.InnerPuzzle,
	)
}

// NFTMetadata is the association list stored in the NFT state layer.
type NFTMetadata struct {
	EditionNumber uint64
	EditionTotal  uint64
	DataURIs      []string
	DataHash      *clvm.Bytes32
	MetadataURIs  []string
	MetadataHash  *clvm.Bytes32
	LicenseURIs   []string
	LicenseHash   *clvm.Bytes32
}

// DecodeNFTMetadata reads the (key . value) association list. Edition number and
// total default to 1; unknown keys are ignored.
func DecodeNFTMetadata(a *clvm.Allocator, n clvm.NodePtr) (NFTMetadata, error) {
	items, err := clvm.DecodeList(a, n)
	if err != nil {
		return NFTMetadata{}, err
	}
	m := NFTMetadata{EditionNumber: 1, EditionTotal: 1}
	for i, item := range items {
		k, v, ok := a.Pair(item)
		if !ok {
			return NFTMetadata{}, &clvm.Error{Kind: clvm.KindDecode, RuleID: "PUZ-NFT-001", Message: fmt.Sprintf("metadata entry %d is not a (key . value) pair", i)}
		}
		key, err := clvm.DecodeString(a, k)
		if err != nil {
			return NFTMetadata{}, clvm.WithField(fmt.Sprintf("metadata entry %d key", i), err)
		}
		if err := m.set(a, key, v); err != nil {
			return NFTMetadata{}, clvm.WithField("metadata "+key, err)
		}
	}
	return m, nil
}

func (m *NFTMetadata) set(a *clvm.Allocator, key string, v clvm.NodePtr) error {
	var err error
	switch key {
	case "sn":
		m.EditionNumber, err = clvm.DecodeUint64(a, v)
	case "st":
		m.EditionTotal, err = clvm.DecodeUint64(a, v)
	case "u":
		m.DataURIs, err = decodeStrings(a, v)
	case "h":
		m.DataHash, err = requiredHash(a, v)
	case "mu":
		m.MetadataURIs, err = decodeStrings(a, v)
	case "mh":
		m.MetadataHash, err = requiredHash(a, v)
	case "lu":
		m.LicenseURIs, err = decodeStrings(a, v)
	case "lh":
		m.LicenseHash, err = requiredHash(a, v)
	}
	return err
}

// requiredHash decodes a hash whose key is present; nil is not accepted as absent.
func requiredHash(a *clvm.Allocator, v clvm.NodePtr) (*clvm.Bytes32, error) {
	h, err := clvm.DecodeBytes32(a, v)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (m NFTMetadata) Encode(a *clvm.Allocator) clvm.NodePtr {
	var items []clvm.NodePtr
	kv := func(key string, v clvm.NodePtr) {
		items = append(items, a.NewPair(a.NewAtom([]byte(key)), v))
	}
	kv("u", encodeStrings(a, m.DataURIs))
	if m.DataHash != nil {
		kv("h", a.NewAtom(m.DataHash[:]))
	}
	kv("mu", encodeStrings(a, m.MetadataURIs))
	if m.MetadataHash != nil {
		kv("mh", a.NewAtom(m.MetadataHash[:]))
	}
	kv("lu", encodeStrings(a, m.LicenseURIs))
	if m.LicenseHash != nil {
		kv("lh", a.NewAtom(m.LicenseHash[:]))
	}
	kv("sn", a.NewUint(m.EditionNumber))
	kv("st", a.NewUint(m.EditionTotal))
	return a.NewList(items...)
}

func decodeStrings(a *clvm.Allocator, n clvm.NodePtr) ([]string, error) {
	items, err := clvm.DecodeList(a, n)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, item := range items {
		s, err := clvm.DecodeString(a, item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func encodeStrings(a *clvm.Allocator, ss []string) clvm.NodePtr {
	items := make([]clvm.NodePtr, 0, len(ss))
	for _, s := range ss {
		items = append(items, a.NewAtom([]byte(s)))
	}
	return a.NewList(items...)
}
