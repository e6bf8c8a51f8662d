package classify

import (
	"errors"

	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/model"
	"xdao.co/spendclass/puzzles"
)

// Report projects s into a model.SpendReport. Raw sub-programs are reported by tree
// hash, so reports built from different arenas compare equal when the spends do.
func Report(a *clvm.Allocator, s KnownSpend) model.SpendReport {
	puzzle, solution := s.Nodes()
	rep := model.SpendReport{
		Shape:        string(s.Kind()),
		PuzzleHash:   hashOf(a, puzzle),
		SolutionHash: hashOf(a, solution),
	}
	for _, e := range s.Layers() {
		rep.Layers = append(rep.Layers, model.LayerReport{
			Name:         e.Name,
			Shape:        string(e.Shape),
			Version:      uint8(e.Version),
			TemplateHash: e.Hash.String(),
		})
	}

	switch v := s.(type) {
	case *StandardSpend:
		rep.Standard = standardReport(a, v)
	case *CATSpend:
		rep.Version = uint8(v.Version)
		rep.CAT = catReport(a, v)
	case *NFTSpend:
		rep.NFT = nftReport(a, v)
	case *DIDSpend:
		rep.DID = didReport(a, v)
	}
	return rep
}

func hashOf(a *clvm.Allocator, n clvm.NodePtr) string { return clvm.TreeHash(a, n).String() }

func optHex(b *clvm.Bytes32) string {
	if b == nil {
		return ""
	}
	return b.String()
}

func standardReport(a *clvm.Allocator, s *StandardSpend) *model.StandardReport {
	r := &model.StandardReport{
		SyntheticKey:        s.Puzzle.Args.SyntheticKey.String(),
		DelegatedPuzzleHash: hashOf(a, s.Solution.DelegatedPuzzle),
		SolutionHash:        hashOf(a, s.Solution.Solution),
	}
	if k := s.Solution.OriginalPublicKey; k != nil {
		r.OriginalPublicKey = k.String()
	}
	return r
}

func catReport(a *clvm.Allocator, s *CATSpend) *model.CATReport {
	args, sol := s.Puzzle.Args, s.Solution
	r := &model.CATReport{
		ModHash:           args.ModHash.String(),
		TailProgramHash:   args.TailProgramHash.String(),
		InnerPuzzleHash:   hashOf(a, args.InnerPuzzle),
		InnerSolutionHash: hashOf(a, sol.InnerSolution),
		PrevCoinID:        sol.PrevCoinID.String(),
		ThisCoin: model.Coin{
			ParentCoinInfo: sol.ThisCoin.ParentCoinInfo.String(),
			PuzzleHash:     sol.ThisCoin.PuzzleHash.String(),
			Amount:         sol.ThisCoin.Amount,
		},
		NextCoinProof: model.CoinProof{
			ParentCoinInfo:  sol.NextCoinProof.ParentCoinInfo.String(),
			InnerPuzzleHash: sol.NextCoinProof.InnerPuzzleHash.String(),
			Amount:          sol.NextCoinProof.Amount,
		},
		PrevSubtotal: sol.PrevSubtotal,
		ExtraDelta:   sol.ExtraDelta,
	}
	if lp := sol.LineageProof; lp != nil {
		p := lineageReport(puzzles.Proof{Lineage: lp})
		r.LineageProof = &p
	}
	return r
}

func lineageReport(p puzzles.Proof) model.LineageProof {
	switch {
	case p.Lineage != nil:
		return model.LineageProof{
			ParentParentCoinID:    p.Lineage.ParentParentCoinID.String(),
			ParentInnerPuzzleHash: p.Lineage.ParentInnerPuzzleHash.String(),
			ParentAmount:          p.Lineage.ParentAmount,
		}
	case p.Eve != nil:
		return model.LineageProof{
			ParentParentCoinID: p.Eve.ParentCoinInfo.String(),
			ParentAmount:       p.Eve.Amount,
			Eve:                true,
		}
	}
	return model.LineageProof{}
}

func singletonReport(st puzzles.SingletonStruct, proof puzzles.Proof, amount uint64) model.SingletonReport {
	return model.SingletonReport{
		ModHash:            st.ModHash.String(),
		LauncherID:         st.LauncherID.String(),
		LauncherPuzzleHash: st.LauncherPuzzleHash.String(),
		LineageProof:       lineageReport(proof),
		Amount:             amount,
	}
}

func nftReport(a *clvm.Allocator, s *NFTSpend) *model.NFTReport {
	state := s.StateLayer().Args
	own := s.OwnershipLayer().Args
	meta := state.Metadata
	return &model.NFTReport{
		Singleton: singletonReport(s.Puzzle.Args.SingletonStruct, s.Solution.LineageProof, s.Solution.Amount),
		Metadata: model.NFTMetadata{
			EditionNumber: meta.EditionNumber,
			EditionTotal:  meta.EditionTotal,
			DataURIs:      meta.DataURIs,
			DataHash:      optHex(meta.DataHash),
			MetadataURIs:  meta.MetadataURIs,
			MetadataHash:  optHex(meta.MetadataHash),
			LicenseURIs:   meta.LicenseURIs,
			LicenseHash:   optHex(meta.LicenseHash),
		},
		MetadataUpdaterPuzzleHash: state.MetadataUpdaterPuzzleHash.String(),
		CurrentOwner:              optHex(own.CurrentOwner),
		TransferProgramHash:       hashOf(a, own.TransferProgram.Node),
		RoyaltyPuzzleHash:         own.TransferProgram.Args.RoyaltyPuzzleHash.String(),
		RoyaltyBasisPoints:        own.TransferProgram.Args.TradePricePercentage,
		InnerPuzzleHash:           hashOf(a, own.InnerPuzzle),
		InnerSolutionHash:         hashOf(a, s.Solution.InnerSolution.InnerSolution.InnerSolution),
	}
}

func didReport(a *clvm.Allocator, s *DIDSpend) *model.DIDReport {
	did := s.Puzzle.Args.InnerPuzzle.Args
	return &model.DIDReport{
		Singleton:                singletonReport(s.Puzzle.Args.SingletonStruct, s.Solution.LineageProof, s.Solution.Amount),
		RecoveryListHash:         optHex(did.RecoveryListHash),
		NumVerificationsRequired: did.NumVerificationsRequired,
		MetadataHash:             hashOf(a, did.Metadata),
		InnerPuzzleHash:          hashOf(a, did.InnerPuzzle),
		InnerSolutionHash:        hashOf(a, s.Solution.InnerSolution.InnerSolution),
	}
}

var codes = map[Kind]model.ErrorCode{
	KindInputDecode:        model.ErrInputDecode,
	KindDecomposition:      model.ErrDecomposition,
	KindUnknownShape:       model.ErrUnknownShape,
	KindUnknownNestedLayer: model.ErrUnknownNestedLayer,
	KindTypedDecode:        model.ErrTypedDecode,
}

// Coded converts a classification error into a model.CodedError. Errors that are
// not classification errors map to INTERNAL.
func Coded(err error) *model.CodedError {
	if err == nil {
		return nil
	}
	var ce *model.CodedError
	if errors.As(err, &ce) {
		return ce
	}
	var e *Error
	if !errors.As(err, &e) {
		return model.NewError(model.ErrInternal, err.Error())
	}
	return &model.CodedError{Code: codes[e.Kind], Stage: string(e.Stage), RuleID: e.RuleID, Message: e.Error()}
}
